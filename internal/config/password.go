package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds configuration for account password hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// Password builds the hashing configuration from the auth section.
func (a AuthConfig) Password() (*PasswordConfig, error) {
	cfg := &PasswordConfig{BcryptCost: a.BcryptCost, Pepper: a.PasswordPepper}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password with bcrypt after appending the pepper.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}
