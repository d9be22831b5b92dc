package extraction

import (
	"context"
	"fmt"

	"github.com/jonathan/jobscout/internal/types"
)

// maxVisionSteps bounds the navigation loop. Every run terminates within
// this many decide/apply iterations regardless of model output.
const maxVisionSteps = 10

const defaultVisionConfidence = 0.8

// VisionStrategy navigates a career page in a bounded step loop: screenshot,
// classify, act, repeat. Both the browser session and the decision model are
// injected.
type VisionStrategy struct {
	newSession func(ctx context.Context) (Session, error)
	decider    Decider
}

// NewVisionStrategy creates the vision-guided navigation strategy.
func NewVisionStrategy(newSession func(ctx context.Context) (Session, error), decider Decider) *VisionStrategy {
	return &VisionStrategy{newSession: newSession, decider: decider}
}

// Name identifies the strategy in extraction results.
func (s *VisionStrategy) Name() string { return "vision-navigation" }

// Extract runs the navigation loop and converts accumulated partial job
// records into full listings. A screenshot or classification failure at any
// step terminates the loop gracefully; whatever was accumulated so far is
// still returned.
func (s *VisionStrategy) Extract(ctx context.Context, company types.Company, careerPageURL string) ([]types.JobListing, float64, error) {
	session, err := s.newSession(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = session.Close() }()

	if err := session.Navigate(ctx, careerPageURL); err != nil {
		return nil, 0, err
	}

	var (
		history     []string
		partials    []PartialJob
		confSum     float64
		confSamples int
	)

steps:
	for step := 0; step < maxVisionSteps; step++ {
		if ctx.Err() != nil {
			break
		}

		screenshot, err := session.Screenshot(ctx)
		if err != nil {
			break // degrade to complete
		}

		action, err := s.decider.NextAction(ctx, screenshot, history)
		if err != nil {
			break // degrade to complete
		}

		history = append(history, stepNote(step, action))

		switch action.Action {
		case ActionExtractJobs:
			partials = append(partials, action.Jobs...)
			confSum += action.Confidence
			confSamples++
		case ActionClickElement:
			if err := session.Click(ctx, action.Element); err != nil {
				break steps
			}
		case ActionScrollPage:
			if err := session.Scroll(ctx); err != nil {
				break steps
			}
		case ActionNavigateNext:
			if err := session.NextPage(ctx); err != nil {
				break steps
			}
		case ActionComplete:
			break steps
		}
	}

	raws := make([]rawListing, 0, len(partials))
	for _, p := range partials {
		raws = append(raws, rawListing{
			Title:          p.Title,
			Location:       p.Location,
			ApplicationURL: p.ApplicationURL,
			EmploymentType: p.EmploymentType,
			RemoteType:     p.RemoteType,
		})
	}

	confidence := defaultVisionConfidence
	if confSamples > 0 {
		confidence = types.Clamp01(confSum / float64(confSamples))
	}
	return buildListings(company, raws), confidence, nil
}

func stepNote(step int, action *VisionAction) string {
	note := action.Action
	if action.Element != "" {
		note += " " + action.Element
	}
	if action.Reasoning != "" {
		note += ": " + action.Reasoning
	}
	return fmt.Sprintf("step %d: %s", step+1, note)
}
