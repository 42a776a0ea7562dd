package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Name: "Anu Thomas", Email: "anu@example.com", Password: "password123", Phone: "9847012345"}

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		errMsg string
	}{
		{"valid", func(*RegisterRequest) {}, ""},
		{"valid without phone", func(r *RegisterRequest) { r.Phone = "" }, ""},
		{"missing name", func(r *RegisterRequest) { r.Name = "" }, "required"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, "min"},
		{"password exactly 8", func(r *RegisterRequest) { r.Password = "12345678" }, ""},
		{"password over bcrypt limit", func(r *RegisterRequest) { r.Password = strings.Repeat("x", 73) }, "max"},
		{"long phone", func(r *RegisterRequest) { r.Phone = strings.Repeat("9", 21) }, "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "anu@example.com", Password: "x"}).Validate())
	assert.ErrorContains(t, (&LoginRequest{Password: "x"}).Validate(), "required")
	assert.ErrorContains(t, (&LoginRequest{Email: "anu", Password: "x"}).Validate(), "email")
	assert.ErrorContains(t, (&LoginRequest{Email: "anu@example.com"}).Validate(), "required")
}

func TestUpdatePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdatePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword"}).Validate())
	assert.ErrorContains(t, (&UpdatePasswordRequest{NewPassword: "newpassword"}).Validate(), "required")
	assert.ErrorContains(t, (&UpdatePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "short"}).Validate(), "min")
	assert.ErrorContains(t, (&UpdatePasswordRequest{CurrentPassword: "samepassword", NewPassword: "samepassword"}).Validate(), "nefield")
}

func TestLoginResponse_JSON(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	resp := LoginResponse{
		User:  &User{ID: id, Name: "Anu Thomas", Email: "anu@example.com", PasswordSet: true, CreatedAt: now, UpdatedAt: now},
		Token: "jwt-token",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), id.String())
	assert.NotContains(t, string(data), "password_hash")
	assert.NotContains(t, string(data), `"phone"`)
}
