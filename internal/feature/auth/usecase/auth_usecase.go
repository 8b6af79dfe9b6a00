package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"auth_portal/internal/feature/auth/domain/entity"
)

const (
	// minUsernameLength is the minimum number of characters in a username.
	minUsernameLength = 3
	// minPasswordLength is the minimum number of characters in a password.
	minPasswordLength = 6
)

// dummyHash is a bcrypt hash of a throwaway password. It is verified when
// a login names an unknown user so that lookup misses and password
// mismatches take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the credential store.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID and CreatedAt.
	// It returns ErrDuplicateUsername if the username is already taken;
	// uniqueness is enforced atomically by the store itself.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves the user with the exact given username.
	// It returns ErrUserNotFound if no such user exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// PasswordHasher abstracts one-way password hashing and verification.
type PasswordHasher interface {
	// Hash derives a salted one-way hash from the plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether the plaintext password matches the hash.
	// It returns false for malformed hashes instead of failing.
	Verify(password, hash string) bool
}

// authUsecase implements registration and authentication.
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
	}
}

// Register validates the submitted form and creates a new user with a
// hashed password. Checks run in order and stop at the first failure:
// required fields, username length, password length, confirmation match,
// then a duplicate pre-check for a friendly message. The pre-check is a
// UX fast path only; the store's unique index is what actually prevents
// two concurrent registrations of the same name.
func (u *authUsecase) Register(ctx context.Context, username, password, confirm string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return nil, &ValidationError{Message: "Username and password are required!"}
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Username must be at least %d characters long!", minUsernameLength)}
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters long!", minPasswordLength)}
	}
	if password != confirm {
		return nil, &ValidationError{Message: "Passwords do not match!"}
	}

	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	user := &entity.User{Username: username, PasswordHash: hash}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			// Lost the race against a concurrent registration of the
			// same name; report it like the pre-check would have.
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	return user, nil
}

// Authenticate verifies the username/password pair and returns the user
// on success. Every failure returns ErrInvalidCredentials: a password is
// verified even when the user does not exist (against a dummy hash) so
// the two cases are indistinguishable in both response and timing.
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.users.FindByUsername(ctx, username)

	hash := dummyHash
	if err == nil {
		hash = user.PasswordHash
	}
	ok := u.hasher.Verify(password, hash)

	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
