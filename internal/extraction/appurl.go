package extraction

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/types"
)

// atsHostnames are the applicant-tracking platforms whose URLs count as
// plausible application links without further processing.
var atsHostnames = []string{
	"greenhouse.io", "lever.co", "workable.com",
	"smartrecruiters.com", "jobvite.com", "bamboohr.com",
}

// atsURLTemplates synthesize an application URL when the career page itself
// lives on a known ATS. Keyed by ATS domain; %s receives the company slug.
var atsURLTemplates = map[string]string{
	"greenhouse.io":       "https://boards.greenhouse.io/%s",
	"lever.co":            "https://jobs.lever.co/%s",
	"workable.com":        "https://apply.workable.com/%s",
	"smartrecruiters.com": "https://careers.smartrecruiters.com/%s",
	"jobvite.com":         "https://jobs.jobvite.com/%s",
	"bamboohr.com":        "https://%s.bamboohr.com/careers",
}

var titleSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// titleSlug turns a job title into a URL path segment.
func titleSlug(title string) string {
	slug := titleSlugRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// plausibleApplicationURL reports whether an extracted URL already looks like
// a working application link.
func plausibleApplicationURL(appURL string) bool {
	if appURL == "" {
		return false
	}
	lowered := strings.ToLower(appURL)
	if strings.Contains(lowered, "apply") {
		return true
	}
	for _, host := range atsHostnames {
		if strings.Contains(lowered, host) {
			return true
		}
	}
	return false
}

// ensureApplicationURL post-processes one listing's application URL. An
// implausible or missing URL is replaced: first by the ATS template matching
// the career page host, else by {careerPageURL}/apply/{title-slug}.
func ensureApplicationURL(listing *types.JobListing, careerPageURL string, company types.Company) {
	if plausibleApplicationURL(listing.ApplicationURL) {
		return
	}

	if parsed, err := url.Parse(careerPageURL); err == nil {
		host := strings.ToLower(parsed.Host)
		for domain, template := range atsURLTemplates {
			if strings.HasSuffix(host, domain) {
				listing.ApplicationURL = fmt.Sprintf(template, discovery.CompanySlug(company.Name))
				return
			}
		}
	}

	listing.ApplicationURL = strings.TrimSuffix(careerPageURL, "/") + "/apply/" + titleSlug(listing.Title)
}
