package entity

import "time"

// Session represents an authenticated caller, decoded from a session token.
// It carries the identity copied from the user at login time.
type Session struct {
	// UserID is the authenticated user's ID.
	UserID uint

	// Username is the authenticated user's name.
	Username string

	// IssuedAt is the token issue time.
	IssuedAt time.Time

	// ExpiresAt is the token expiration time.
	ExpiresAt time.Time
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
