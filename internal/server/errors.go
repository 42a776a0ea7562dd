package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/content"
	"github.com/thepetra/petra/internal/leads"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature whose backing service is not configured.
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists *ErrEmailAlreadyExists
		badCreds    *ErrInvalidCredentials
		mismatch    *ErrPasswordMismatch
		notFound    *ErrUserNotFound
		validation  *ErrValidation
		unavailable *ErrUnavailable
		leadInvalid *leads.ValidationError
		signature   *billing.SignatureError
		gateway     *billing.GatewayError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badCreds), errors.As(err, &mismatch):
		return http.StatusUnauthorized
	case errors.As(err, &notFound), errors.Is(err, billing.ErrPlanNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &leadInvalid),
		errors.As(err, &signature), errors.Is(err, content.ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, billing.ErrPaymentRequired), errors.Is(err, billing.ErrInvalidPayment):
		return http.StatusPaymentRequired
	case errors.As(err, &unavailable), errors.Is(err, billing.ErrPaymentsDisabled), errors.Is(err, billing.ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.As(err, &gateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the machine-readable code sent with some errors.
func errorCode(err error) string {
	switch {
	case errors.Is(err, billing.ErrPaymentRequired):
		return "PAYMENT_REQUIRED"
	case errors.Is(err, billing.ErrInvalidPayment):
		return "INVALID_PAYMENT"
	default:
		return ""
	}
}

// validationError converts validator errors to an ErrValidation for the
// first failing field.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
