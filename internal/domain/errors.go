package domain

import "fmt"

// ValidationError marks malformed or missing input, e.g. an empty problem
// statement on deck generation. The HTTP layer maps it to a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExternalServiceError wraps a failure of the AI or export collaborator with
// enough context for a user-facing message. Services surface it without
// retrying; retry policy belongs to the caller.
type ExternalServiceError struct {
	Op      string
	SlideID string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.SlideID != "" {
		return fmt.Sprintf("%s (slide %s): %v", e.Op, e.SlideID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
