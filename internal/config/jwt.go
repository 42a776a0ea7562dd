package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for session token signing and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// JWT builds the token configuration. The secret is required; sessions last
// 30 days unless auth.jwt_expiration_hours says otherwise.
func (a AuthConfig) JWT() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          a.JWTSecret,
		ExpirationHours: a.JWTExpirationHours,
		Issuer:          "petra",
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Expiration returns the session lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
