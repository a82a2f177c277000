package ingestion

import "fmt"

// ValidationError reports an upload rejected before any decoding was attempted.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseError reports a document-format decoding failure
type ParseError struct {
	Format  MediaType
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
