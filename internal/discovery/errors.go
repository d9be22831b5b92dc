// Package discovery locates a company's career page among many possible URLs.
// Candidates are generated from an external search collaborator, deterministic
// path patterns, and known job-board templates, then scored and validated.
package discovery

import "fmt"

// ValidationError represents a candidate URL failing structural or content checks.
type ValidationError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error for %s: %s", e.URL, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
