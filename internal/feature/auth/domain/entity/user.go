// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// It contains the login credential and creation metadata.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users
	// and is stored case-sensitively.
	Username string `gorm:"uniqueIndex;size:80;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This never stores a plaintext password and is never compared
	// by equality, only through the password verifier.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user registered.
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
