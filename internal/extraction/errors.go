package extraction

import "fmt"

// ParseError indicates a collaborator returned malformed JSON or HTML that
// could not be recovered into structured listings.
type ParseError struct {
	Strategy string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %s strategy: %s: %v", e.Strategy, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error in %s strategy: %s", e.Strategy, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
