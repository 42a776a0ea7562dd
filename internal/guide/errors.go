package guide

import "fmt"

// ParseError indicates the model returned something other than a valid guide.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("guide parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("guide parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
