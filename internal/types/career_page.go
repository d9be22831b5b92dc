package types

// CandidateSource identifies how a career page candidate URL was generated.
type CandidateSource string

// Candidate source values
const (
	SourcePattern        CandidateSource = "pattern"
	SourceJobBoard       CandidateSource = "job_board"
	SourceExternalSearch CandidateSource = "external_search"
)

// CareerPageCandidate is a scored URL candidate considered during discovery.
// Candidates are generated, scored, and discarded once the best is chosen.
type CareerPageCandidate struct {
	URL    string          `json:"url"`
	Score  float64         `json:"score"`
	Source CandidateSource `json:"source"`
}

// CareerPageResult is the outcome of locating a company's career page.
// Immutable once produced; cached with a TTL keyed by (company, website URL).
type CareerPageResult struct {
	CompanyID      string   `json:"company_id"`
	URL            string   `json:"url,omitempty"`
	Confidence     float64  `json:"confidence"`
	AdditionalURLs []string `json:"additional_urls,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Found reports whether discovery produced a usable career page URL.
func (r *CareerPageResult) Found() bool {
	return r.URL != ""
}
