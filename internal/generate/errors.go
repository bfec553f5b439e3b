package generate

import "fmt"

// GenerationError reports a non-success response from the backend,
// including a timeout on the composed request deadline.
type GenerationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return fmt.Sprintf("generation failed: backend status %d: %s", e.StatusCode, e.Body)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError reports a response body that did not hold valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse backend response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
