// Package password provides bcrypt-based password hashing and verification.
package password

import (
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt. bcrypt output embeds
// the algorithm, cost and salt, so verification needs no external
// parameters, and its comparison is constant time.
//
// bcrypt is CPU-bound, so concurrent calls are bounded by a semaphore to
// keep a burst of registrations or logins from starving request
// goroutines.
type Hasher struct {
	cost int
	sem  chan struct{}
}

// New creates a Hasher with the given bcrypt cost and concurrency limit.
// A cost of 0 selects bcrypt.DefaultCost; a maxConcurrent of 0 selects
// the number of CPUs.
func New(cost, maxConcurrent int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

// Hash derives a salted bcrypt hash from the plaintext password.
// Two calls with the same password produce different hashes because
// bcrypt generates a fresh salt each time.
func (h *Hasher) Hash(password string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
// A malformed hash verifies as false rather than failing.
func (h *Hasher) Verify(password, hash string) bool {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
