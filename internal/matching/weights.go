// Package matching scores extracted job listings against a user's profile
// and preferences. Each axis is an independent bounded heuristic; the final
// score is the weighted sum of clamped axis scores, itself clamped to [0,1].
// Weights intentionally sum past 1 so the model-based overall-fit term can
// lift strong matches above what rule-based axes alone would produce.
package matching

// Weights holds the per-axis contribution to the combined match score.
type Weights struct {
	Skills         float64
	Location       float64
	Experience     float64
	Industry       float64
	EmploymentType float64
	Remote         float64
	Salary         float64
	OverallFit     float64
}

// DefaultWeights returns the standard axis weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:         0.30,
		Location:       0.15,
		Experience:     0.20,
		Industry:       0.10,
		EmploymentType: 0.10,
		Remote:         0.10,
		Salary:         0.15,
		OverallFit:     0.25,
	}
}
