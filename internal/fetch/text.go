package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTextBudget caps the plain-text projection handed to LLM-consuming
// steps. Pages routinely exceed this; anything longer is truncated with an
// explicit marker rather than silently cut.
const DefaultTextBudget = 12000

// TruncationMarker is appended when a text projection exceeds its budget.
const TruncationMarker = "\n[... content truncated ...]"

// HTMLToText produces the plain-text projection of a page: script, style,
// head, and comments are stripped, and block-level elements collapse to
// whitespace so text from adjacent blocks does not run together.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, head, iframe, svg").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	// Insert newlines around block elements so Text() keeps them separated.
	body.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article, header, footer").
		Each(func(_ int, s *goquery.Selection) {
			s.AppendHtml("\n")
		})

	return cleanWhitespace(body.Text())
}

// TruncateText bounds text to budget characters, appending the truncation
// marker when content was dropped. A budget of 0 uses DefaultTextBudget.
func TruncateText(text string, budget int) string {
	if budget <= 0 {
		budget = DefaultTextBudget
	}
	if len(text) <= budget {
		return text
	}
	return text[:budget] + TruncationMarker
}

// cleanWhitespace collapses runs of blank lines and trims each line.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
