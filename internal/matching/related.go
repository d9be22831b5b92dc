package matching

// relatedTech maps a technology to technologies close enough to earn
// partial credit in the skills axis. Lookups go both directions. Knowing a
// base language never earns credit for an unmet framework requirement
// (python does not cover django), so those pairings are absent.
var relatedTech = map[string][]string{
	"react":      {"javascript", "typescript"},
	"vue":        {"javascript", "typescript"},
	"angular":    {"javascript", "typescript"},
	"node":       {"javascript", "typescript"},
	"nodejs":     {"javascript", "typescript"},
	"kotlin":     {"java"},
	"kubernetes": {"docker", "devops"},
	"terraform":  {"aws", "devops"},
	"postgresql": {"sql", "postgres"},
	"postgres":   {"sql"},
	"mysql":      {"sql"},
	"golang":     {"go"},
	"go":         {"golang"},
}

// relatedSkills reports whether two technology tokens are related per the
// table, in either direction.
func relatedSkills(a, b string) bool {
	for _, rel := range relatedTech[a] {
		if rel == b {
			return true
		}
	}
	for _, rel := range relatedTech[b] {
		if rel == a {
			return true
		}
	}
	return false
}
