package model

import "time"

// User identifies who created or modified documents.
// PasswordHash carries a bcrypt digest and is never serialized.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// UserUpdate is a sparse update payload. A nil field means "leave unchanged";
// a non-nil field is applied as-is. PasswordHash must already be a digest;
// the service layer hashes plaintext before building this struct.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
}
