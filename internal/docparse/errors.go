package docparse

import "fmt"

// ParseError represents a document that could not be parsed: unsupported
// format or unreadable content.
type ParseError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	name := e.Filename
	if name == "" {
		name = "document"
	}
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s: %s", name, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
