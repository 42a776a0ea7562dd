package leads

import "fmt"

// ValidationError reports the first invalid field of a submission.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Tag)
}

// DeliveryError indicates a required notification email could not be sent.
type DeliveryError struct {
	Form  Form
	Cause error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send %s email: %v", e.Form, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
