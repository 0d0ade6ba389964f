package entities

import (
	"time"
)

// User is a registered identity. The email doubles as the username for the
// password grant. Only the bcrypt hash of the password is ever stored.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	Roles        string    `gorm:"size:255" json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Book is a tracked library entry. Title and author are required and must be
// non-empty at all times; the ID is assigned on creation and never changes.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512" json:"title"`
	Author    string    `gorm:"index;size:256" json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Token statuses. A token starts active and moves to revoked at most once;
// expiry is derived from ExpiresAt rather than stored as a status.
const (
	TokenStatusActive  = "active"
	TokenStatusRevoked = "revoked"
)

// Token is the stored record of an issued bearer token, keyed by the jti
// claim embedded in the signed access token. The signed token itself is
// never persisted.
type Token struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	JTI       string     `gorm:"uniqueIndex;size:36" json:"jti"`
	UserID    uint       `gorm:"index" json:"user_id"`
	Status    string     `gorm:"size:16" json:"status"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `gorm:"index" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Active reports whether the token may still authorize requests.
func (t *Token) Active(now time.Time) bool {
	return t.Status == TokenStatusActive && now.Before(t.ExpiresAt)
}
