package matching

import (
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// neutralScore is used when an axis has no information to judge on.
const neutralScore = 0.7

// relatedCredit is the partial credit for a related-but-not-exact skill match.
const relatedCredit = 0.7

// skillsScore is the fraction of job requirement/technology tokens covered
// by the user's skills, with partial credit for related technologies.
func skillsScore(job types.JobListing, prefs types.UserPreferences) float64 {
	tokens := append([]string{}, job.Requirements...)
	tokens = append(tokens, job.Technologies...)
	if len(tokens) == 0 {
		return neutralScore
	}

	skills := make([]string, 0, len(prefs.Skills))
	for _, s := range prefs.Skills {
		skills = append(skills, strings.ToLower(strings.TrimSpace(s)))
	}

	credit := 0.0
	for _, token := range tokens {
		lowered := strings.ToLower(token)
		best := 0.0
		for _, skill := range skills {
			if skill == "" {
				continue
			}
			if strings.Contains(lowered, skill) || strings.Contains(skill, lowered) {
				best = 1.0
				break
			}
			if relatedSkills(skill, strings.TrimSpace(lowered)) {
				best = relatedCredit
			}
		}
		credit += best
	}

	return types.Clamp01(credit / float64(len(tokens)))
}

// locationScore rates geographic compatibility. Remote-compatible pairings
// dominate; otherwise city then country overlap against the preference list.
func locationScore(job types.JobListing, prefs types.UserPreferences) float64 {
	remoteCompatible := job.RemoteType == types.Remote ||
		(job.RemoteType == types.Hybrid && prefs.RemotePreference != types.OnSiteOnly)
	if remoteCompatible && prefs.RemotePreference != types.OnSiteOnly {
		return 1.0
	}

	jobLoc := strings.ToLower(job.Location)
	if jobLoc == "" || len(prefs.Locations) == 0 {
		return neutralScore
	}

	for _, loc := range prefs.Locations {
		lowered := strings.ToLower(strings.TrimSpace(loc))
		if lowered != "" && strings.Contains(jobLoc, lowered) {
			return 0.8
		}
	}
	if sameCountry(jobLoc, prefs.Locations) {
		return 0.6
	}
	return 0.3
}

// sameCountry is a comma-suffix heuristic: "Berlin, Germany" and
// "Munich, Germany" share a trailing country segment.
func sameCountry(jobLoc string, preferred []string) bool {
	jobCountry := lastSegment(jobLoc)
	if jobCountry == "" {
		return false
	}
	for _, loc := range preferred {
		if lastSegment(strings.ToLower(loc)) == jobCountry {
			return true
		}
	}
	return false
}

func lastSegment(loc string) string {
	parts := strings.Split(loc, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-1])
}

// experienceDistanceScores maps ordinal distance between the user's inferred
// level and the job's level onto a score.
var experienceDistanceScores = []float64{1.0, 0.8, 0.5}

// experienceScore rates seniority alignment by ordinal distance.
func experienceScore(job types.JobListing, profile types.UserProfile) float64 {
	distance := job.ExperienceLevel.Ordinal() - inferredLevel(profile).Ordinal()
	if distance < 0 {
		distance = -distance
	}
	if distance < len(experienceDistanceScores) {
		return experienceDistanceScores[distance]
	}
	return 0.2
}

// inferredLevel derives the user's experience level from years of
// experience. An empty profile defaults to mid.
func inferredLevel(profile types.UserProfile) types.ExperienceLevel {
	switch years := profile.YearsExperience; {
	case years <= 0:
		return types.LevelMid
	case years < 2:
		return types.LevelEntry
	case years < 5:
		return types.LevelMid
	case years < 9:
		return types.LevelSenior
	default:
		return types.LevelLead
	}
}

// industryScore checks preferred industries against the listing text.
func industryScore(job types.JobListing, prefs types.UserPreferences) float64 {
	if len(prefs.PreferredIndustries) == 0 {
		return neutralScore
	}
	haystack := strings.ToLower(job.Title + " " + job.Department + " " + job.Description)
	for _, industry := range prefs.PreferredIndustries {
		lowered := strings.ToLower(strings.TrimSpace(industry))
		if lowered != "" && strings.Contains(haystack, lowered) {
			return 1.0
		}
	}
	return 0.4
}

// employmentTypeScore checks the listing against the preferred job types.
func employmentTypeScore(job types.JobListing, prefs types.UserPreferences) float64 {
	if len(prefs.JobTypes) == 0 {
		return neutralScore
	}
	for _, jt := range prefs.JobTypes {
		if types.NormalizeEmploymentType(jt) == job.EmploymentType {
			return 1.0
		}
	}
	return 0.3
}

// remoteScore rates the workplace arrangement against the user's preference.
func remoteScore(job types.JobListing, prefs types.UserPreferences) float64 {
	switch prefs.RemotePreference {
	case types.RemoteOnly:
		switch job.RemoteType {
		case types.Remote:
			return 1.0
		case types.Hybrid:
			return 0.6
		default:
			return 0.1
		}
	case types.RemoteFriendly:
		switch job.RemoteType {
		case types.Remote:
			return 1.0
		case types.Hybrid:
			return 0.9
		default:
			return 0.5
		}
	case types.OnSiteOnly:
		switch job.RemoteType {
		case types.OnSite:
			return 1.0
		case types.Hybrid:
			return 0.7
		default:
			return 0.2
		}
	default:
		return neutralScore
	}
}

// salaryScore is the overlap proportion between the user's salary range and
// the job's, measured against the user's range width. Missing information on
// either side yields the neutral score.
func salaryScore(job types.JobListing, prefs types.UserPreferences) float64 {
	userLo, userHi := normalizeRange(prefs.SalaryMin, prefs.SalaryMax)
	jobLo, jobHi := normalizeRange(job.SalaryMin, job.SalaryMax)
	if userHi == 0 || jobHi == 0 {
		return neutralScore
	}

	overlap := min(userHi, jobHi) - max(userLo, jobLo)
	if overlap < 0 {
		return 0
	}

	width := userHi - userLo
	if width == 0 {
		// Point range: in or out.
		if userLo >= jobLo && userLo <= jobHi {
			return 1.0
		}
		return 0
	}
	return types.Clamp01(float64(overlap) / float64(width))
}

// normalizeRange fills a missing bound from the present one; (0,0) means
// the range is unknown.
func normalizeRange(lo, hi int) (int, int) {
	if lo == 0 {
		lo = hi
	}
	if hi == 0 {
		hi = lo
	}
	return lo, hi
}
