package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrPlanNotFound is returned for unknown or inactive plans.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrPaymentsDisabled is returned when no gateway credentials are configured.
	ErrPaymentsDisabled = errors.New("payments are not configured")
	// ErrNoStore is returned by operations that need subscription storage
	// when the service runs without a database.
	ErrNoStore = errors.New("subscription storage is not configured")
	// ErrPaymentRequired is returned when a paid feature is used without
	// a subscription or payment.
	ErrPaymentRequired = errors.New("payment required")
	// ErrInvalidPayment is returned when a payment proof does not verify.
	ErrInvalidPayment = errors.New("payment verification failed")
)

// SignatureError reports a webhook or payment signature that failed verification.
type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature error: %s", e.Reason)
}

// GatewayError wraps a failed call to the payment gateway.
type GatewayError struct {
	Op    string
	Cause error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s failed: %v", e.Op, e.Cause)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}
