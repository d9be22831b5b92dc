// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobscout/internal/extraction"
	"github.com/jonathan/jobscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCareerPage outputs the discovery outcome for one company.
func (p *Printer) PrintCareerPage(company types.Company, result types.CareerPageResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:    %s\n", company.Name))
	if result.Found() {
		sb.WriteString(fmt.Sprintf("URL:        %s\n", result.URL))
		sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.Confidence))
	} else {
		sb.WriteString("URL:        (none found)\n")
		if result.Error != "" {
			sb.WriteString(fmt.Sprintf("Reason:     %s\n", result.Error))
		}
	}

	if len(result.AdditionalURLs) > 0 {
		sb.WriteString("\nAlternates:\n")
		count := min(len(result.AdditionalURLs), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.AdditionalURLs[i]))
		}
		if len(result.AdditionalURLs) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.AdditionalURLs)-3))
		}
	}

	p.printBox("CAREER PAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs the extraction outcome for one company.
func (p *Printer) PrintExtraction(company types.Company, result extraction.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:    %s\n", company.Name))
	sb.WriteString(fmt.Sprintf("Method:     %s\n", result.Method))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.Confidence))
	sb.WriteString(fmt.Sprintf("Jobs found: %d\n", len(result.Jobs)))

	if len(result.Jobs) > 0 {
		sb.WriteString("\n")
		count := min(len(result.Jobs), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := result.Jobs[i]
			title := job.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s\n", title))
			if job.Location != "" {
				sb.WriteString(fmt.Sprintf("  %s (%s)\n", job.Location, job.RemoteType))
			}
		}
		if len(result.Jobs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(result.Jobs)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the top ranked matches with scores and reasons.
func (p *Printer) PrintMatches(matches []types.JobMatch) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		title := match.Job.Title
		if len(title) > 35 {
			title = title[:32] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (%s)\n", match.MatchScore, match.Recommendation))
		if len(match.MatchReasons) > 0 {
			reason := match.MatchReasons[0]
			if len(reason) > 44 {
				reason = reason[:41] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-maxItemsToShow))
	}

	p.printBox("TOP MATCHES", sb.String())
}
