package auth

import "errors"

// Sentinel errors for authentication operations.
var (
	// ErrInvalidCredentials indicates that the username/password pair did not
	// match a known user. The same error covers unknown usernames and wrong
	// passwords so responses do not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken indicates that a signup attempt used a username that
	// already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrWeakPassword indicates that a signup password failed the password
	// policy (too short or on the weak-password list).
	ErrWeakPassword = errors.New("password does not meet requirements")
)
