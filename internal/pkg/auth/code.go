// internal/pkg/auth/code.go
package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/techempire/storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in a sign-in code
const CodeLength = 6

// CodeManager issues and checks one-time sign-in codes
type CodeManager struct {
	cost int
}

// NewCodeManager creates a new code manager
func NewCodeManager(cfg *config.Config) *CodeManager {
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CodeManager{cost: cost}
}

// Generate returns a random zero-padded numeric code
func (m *CodeManager) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Hash hashes a code using bcrypt
func (m *CodeManager) Hash(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), m.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether code matches hash
func (m *CodeManager) Verify(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
