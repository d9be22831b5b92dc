package types

// Recommendation is the tier assigned to a match based on its combined score.
type Recommendation string

// Recommendation tiers
const (
	HighlyRecommended Recommendation = "highly_recommended"
	Recommended       Recommendation = "recommended"
	Consider          Recommendation = "consider"
	NotRecommended    Recommendation = "not_recommended"
)

// RecommendationForScore maps a combined match score onto a recommendation tier.
func RecommendationForScore(score float64) Recommendation {
	switch {
	case score >= 0.80:
		return HighlyRecommended
	case score >= 0.65:
		return Recommended
	case score >= 0.40:
		return Consider
	default:
		return NotRecommended
	}
}

// MatchBreakdown holds the independent axis scores behind a match, each in [0,1].
type MatchBreakdown struct {
	Skills         float64 `json:"skills"`
	Location       float64 `json:"location"`
	Experience     float64 `json:"experience"`
	Industry       float64 `json:"industry"`
	EmploymentType float64 `json:"employment_type"`
	Remote         float64 `json:"remote"`
	Salary         float64 `json:"salary"`
	OverallFit     float64 `json:"overall_fit"`
}

// JobMatch is the scored pairing of one listing with the user's preferences.
// Derived and stateless: recomputed on every run, never persisted.
type JobMatch struct {
	Job            JobListing     `json:"job"`
	MatchScore     float64        `json:"match_score"`
	MatchBreakdown MatchBreakdown `json:"match_breakdown"`
	MatchReasons   []string       `json:"match_reasons,omitempty"`
	Concerns       []string       `json:"concerns,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
}
