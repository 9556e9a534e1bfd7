// Package auth provides HTTP authentication: session JWT issuance,
// validation middleware, and the repository-backed user provider.
package auth

import (
	"fmt"
	"os"
)

// minSecretLength is the minimum required length for the JWT signing secret.
const minSecretLength = 32

// ValidateJWTSecret validates the JWT signing secret at application startup.
// This must be called before the server starts so a missing or weak secret
// fails fast instead of silently signing tokens with an empty key.
//
// Requirements:
//   - JWT_SECRET must not be empty
//   - JWT_SECRET must be at least 32 bytes
//
// The error message is safe to log; it never includes the secret itself.
func ValidateJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be empty")
	}

	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must be at least %d bytes (current length: %d)", minSecretLength, len(secret))
	}

	return nil
}
