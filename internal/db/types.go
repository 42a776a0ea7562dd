package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account
type User struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	PasswordHash      string    `json:"-"` // Never serialize to JSON
	PasswordSet       bool      `json:"password_set"`
	GatewayCustomerID *string   `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Lead is a stored lead form submission
type Lead struct {
	ID        uuid.UUID       `json:"id"`
	Form      string          `json:"form"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Assessment is a stored readiness assessment. Answers and Result hold the
// submitted questionnaire and the scorer output as JSON.
type Assessment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	Answers   json.RawMessage `json:"answers"`
	Score     int             `json:"score"`
	Tier      string          `json:"tier"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// GuideExport records a paid guide export
type GuideExport struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Email      string     `json:"email"`
	PetName    string     `json:"pet_name,omitempty"`
	PaymentID  string     `json:"razorpay_payment_id,omitempty"`
	Subscriber bool       `json:"subscriber"`
	CreatedAt  time.Time  `json:"created_at"`
}
