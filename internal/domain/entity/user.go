package entity

import "time"

// User represents an account that owns generated articles.
// PasswordHash holds a bcrypt hash; the plaintext password never leaves the
// auth service boundary.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
