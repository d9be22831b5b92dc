package pipeline

import "time"

// Pipeline stage names used in progress events and the trail.
const (
	StageDiscovery  = "discovery"
	StageExtraction = "extraction"
	StageMatching   = "matching"
)

// Reserved percentage bands per stage. Percent values only move forward:
// each stage starts where the previous one ended.
const (
	discoveryBandStart = 10.0
	discoveryBandEnd   = 30.0
	extractionBandEnd  = 55.0
	matchingBandEnd    = 70.0
)

// ProgressEvent is one discrete progress update, emitted after a company
// completes a stage.
type ProgressEvent struct {
	Step         string  `json:"step"`
	Company      string  `json:"company"`
	Message      string  `json:"message"`
	Percent      float64 `json:"percent"`
	JobsSoFar    int     `json:"jobs_so_far"`
	MatchesSoFar int     `json:"matches_so_far"`
}

// ProgressCallback receives progress events during a run.
type ProgressCallback func(event ProgressEvent)

// TrailEntry is one line of the narrative trail: a human-readable record of
// what the pipeline did and why, kept alongside the structured results.
type TrailEntry struct {
	Time    time.Time `json:"time"`
	Company string    `json:"company"`
	Stage   string    `json:"stage"`
	Note    string    `json:"note"`
}

// bandPercent scales completion within a stage into that stage's band.
func bandPercent(start, end float64, done, total int) float64 {
	if total <= 0 {
		return end
	}
	return start + (end-start)*float64(done)/float64(total)
}
