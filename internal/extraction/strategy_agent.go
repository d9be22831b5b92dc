package extraction

import (
	"context"
	"sort"

	"github.com/jonathan/jobscout/internal/agent"
	"github.com/jonathan/jobscout/internal/types"
)

// Caps for the agent strategy: how many results the agent is asked for and
// how many of its ranked jobs survive into the pipeline.
const (
	agentResultCap = 15
	agentTopJobs   = 5

	agentConfidence = 0.9
)

// AgentClient is the browser-automation agent capability consumed by the
// agent strategy. *agent.Client satisfies it.
type AgentClient interface {
	SearchJobs(ctx context.Context, req agent.SearchRequest) ([]agent.Job, error)
}

// AgentStrategy delegates extraction to the external browser-automation
// agent and keeps the top of its ranked result list.
type AgentStrategy struct {
	client AgentClient
	prefs  types.UserPreferences
}

// NewAgentStrategy creates the agent-backed extraction strategy.
func NewAgentStrategy(client AgentClient, prefs types.UserPreferences) *AgentStrategy {
	return &AgentStrategy{client: client, prefs: prefs}
}

// Name identifies the strategy in extraction results.
func (s *AgentStrategy) Name() string { return "browser-agent" }

// Extract asks the agent for ranked listings and keeps the top five after
// re-sorting by the agent's relevance score.
func (s *AgentStrategy) Extract(ctx context.Context, company types.Company, careerPageURL string) ([]types.JobListing, float64, error) {
	req := agent.SearchRequest{
		Company:    company.Name,
		URL:        careerPageURL,
		Keywords:   s.prefs.Skills,
		MaxResults: agentResultCap,
	}
	if len(s.prefs.Locations) > 0 {
		req.Location = s.prefs.Locations[0]
	}

	jobs, err := s.client.SearchJobs(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].RelevanceScore > jobs[j].RelevanceScore
	})
	if len(jobs) > agentTopJobs {
		jobs = jobs[:agentTopJobs]
	}

	raws := make([]rawListing, 0, len(jobs))
	for _, job := range jobs {
		raws = append(raws, rawListing{
			Title:          job.Title,
			Location:       job.Location,
			Description:    job.Description,
			ApplicationURL: job.ApplicationURL,
			EmploymentType: job.EmploymentType,
			RemoteType:     job.RemoteType,
		})
	}

	return buildListings(company, raws), agentConfidence, nil
}
