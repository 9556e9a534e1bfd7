// Package auth provides framework-agnostic authentication business logic.
// It defines the user provider abstraction and the password policy applied
// at signup time.
package auth

import (
	"context"
	"strings"

	"tubescribe/internal/domain/entity"
)

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// RegisterInput represents the input for creating a new user account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// UserProvider defines the interface for user authentication backends.
// This interface is framework-agnostic and can be implemented by various
// storage mechanisms.
type UserProvider interface {
	// Authenticate validates credentials and returns the matching user.
	// Returns ErrInvalidCredentials when no user matches.
	Authenticate(ctx context.Context, creds Credentials) (*entity.User, error)

	// Register creates a new user account.
	// Returns ErrUsernameTaken when the username already exists.
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)

	// GetRequirements returns the credential requirements for this provider.
	GetRequirements() CredentialRequirements

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic.
// This service is framework-agnostic and can be used with any HTTP framework.
type AuthService struct {
	provider        UserProvider
	publicEndpoints []string
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider UserProvider, publicEndpoints []string) *AuthService {
	return &AuthService{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// Authenticate validates credentials via the configured provider.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}
	return s.provider.Authenticate(ctx, creds)
}

// Register creates a new user account after applying the password policy.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := s.CheckPasswordPolicy(in.Password); err != nil {
		return nil, err
	}
	return s.provider.Register(ctx, in)
}

// CheckPasswordPolicy validates a candidate password against the provider's
// requirements. Returns ErrWeakPassword on any violation.
func (s *AuthService) CheckPasswordPolicy(password string) error {
	reqs := s.provider.GetRequirements()

	if len(password) < reqs.MinPasswordLength {
		return ErrWeakPassword
	}

	lower := strings.ToLower(password)
	for _, weak := range reqs.WeakPasswords {
		if lower == weak || strings.HasPrefix(lower, weak) {
			return ErrWeakPassword
		}
	}

	return nil
}

// IsPublicEndpoint checks if a path is publicly accessible.
// Returns true if the path matches any configured public endpoint prefix.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// GetProvider returns the current user provider.
func (s *AuthService) GetProvider() UserProvider {
	return s.provider
}
