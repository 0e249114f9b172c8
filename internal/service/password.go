package service

import (
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects inputs longer than this.
const bcryptMaxInput = 72

type PasswordHasher struct {
	cost      int
	dummyOnce sync.Once
	dummyHash []byte
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt digest. Any input string is accepted; an error
// is only possible when the system entropy source fails.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prepare(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes never match.
func (h *PasswordHasher) Verify(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(plaintext)) == nil
}

// VerifyDummy spends the same work as Verify against a throwaway hash so an
// unknown username costs as much as a wrong password.
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, prepare(plaintext))
}

func prepare(plaintext string) []byte {
	if len(plaintext) <= bcryptMaxInput {
		return []byte(plaintext)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
