package recommend

import "fmt"

// ParseError indicates the model returned something other than a valid
// recommendation document.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recommendation parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("recommendation parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
