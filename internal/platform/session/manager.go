// Package session issues and verifies signed session tokens.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"auth_portal/internal/feature/auth/domain/entity"
)

// Manager binds authenticated users to opaque session tokens. Tokens are
// HS256-signed JWTs, so the server trusts only identities that round-trip
// through its own signing key; a client cannot forge or alter the user ID
// without invalidating the signature.
//
// The manager keeps no server-side state. Ending a session is discarding
// the token (the transport deletes its cookie), which makes ending an
// already-absent session a natural no-op.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager signing with the given secret. Tokens
// expire after ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Start issues a signed token carrying the user's identity. Each call
// produces a distinct token, even for the same user, because of the jti
// claim.
func (m *Manager) Start(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Username,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Current decodes the token and returns the session it carries. It
// returns false for an absent, malformed, tampered or expired token, or
// one signed with an unexpected algorithm.
func (m *Manager) Current(token string) (*entity.Session, bool) {
	if token == "" {
		return nil, false
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return nil, false
	}
	name, ok := claims["name"].(string)
	if !ok {
		return nil, false
	}

	sess := &entity.Session{
		UserID:   uint(sub),
		Username: name,
	}
	if iat, ok := claims["iat"].(float64); ok {
		sess.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		sess.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return sess, true
}
