package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tubescribe/internal/domain/entity"
	"tubescribe/internal/repository"
	authservice "tubescribe/internal/service/auth"
)

// UserRepoProvider implements repository-backed authentication.
// Passwords are stored as bcrypt hashes and compared in constant time by
// bcrypt itself.
type UserRepoProvider struct {
	users             repository.UserRepository
	minPasswordLength int
	weakPasswords     []string
}

// NewUserRepoProvider creates a new user-repository auth provider.
func NewUserRepoProvider(users repository.UserRepository, minPasswordLength int, weakPasswords []string) *UserRepoProvider {
	return &UserRepoProvider{
		users:             users,
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// Authenticate validates credentials against the user repository.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials;
// a bcrypt comparison runs in both cases to keep response timing uniform.
func (p *UserRepoProvider) Authenticate(ctx context.Context, creds authservice.Credentials) (*entity.User, error) {
	user, err := p.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: lookup user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil || user == nil {
		return nil, authservice.ErrInvalidCredentials
	}

	return user, nil
}

// Register creates a new user account with a bcrypt password hash.
// Returns ErrUsernameTaken when the username already exists.
func (p *UserRepoProvider) Register(ctx context.Context, in authservice.RegisterInput) (*entity.User, error) {
	if err := entity.ValidateUsername(in.Username); err != nil {
		return nil, err
	}

	taken, err := p.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("Register: check username: %w", err)
	}
	if taken {
		return nil, authservice.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := p.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("Register: create user: %w", err)
	}

	return user, nil
}

// GetRequirements returns the password requirements.
func (p *UserRepoProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *UserRepoProvider) Name() string {
	return "user-repo"
}

// dummyHash is a bcrypt hash of an unguessable constant, used to equalize
// timing when the username does not exist.
var dummyHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("tubescribe-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()
