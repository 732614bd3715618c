// Package hashing provides the credential digests that stand in for a
// fingerprint template. Every hasher is deterministic so the digest can be
// looked up through the unique credential_hash column.
package hashing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

const (
	SHA256     = "sha256"
	HMACSHA256 = "hmac-sha256"
	Argon2ID   = "argon2id"
)

var ErrPepperRequired = errors.New("hasher requires a non-empty pepper")

// New returns the hasher registered under name.
func New(name, pepper string) (ports.CredentialHasher, error) {
	switch name {
	case "", SHA256:
		return SHA256Hasher{}, nil
	case HMACSHA256:
		if pepper == "" {
			return nil, fmt.Errorf("%s: %w", name, ErrPepperRequired)
		}
		return NewHMACHasher(pepper), nil
	case Argon2ID:
		if pepper == "" {
			return nil, fmt.Errorf("%s: %w", name, ErrPepperRequired)
		}
		return NewArgon2Hasher(pepper), nil
	default:
		return nil, fmt.Errorf("unknown credential hasher %q", name)
	}
}

// SHA256Hasher produces the lowercase hex SHA-256 of the secret, the format
// used by voting.db files written before peppered hashing existed.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

type HMACHasher struct {
	key []byte
}

func NewHMACHasher(pepper string) *HMACHasher {
	return &HMACHasher{key: []byte(pepper)}
}

func (h *HMACHasher) Hash(secret string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// Argon2Hasher derives the digest with Argon2id. The pepper doubles as the
// salt: a per-voter salt would make the digest unsearchable.
type Argon2Hasher struct {
	salt    []byte
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

func NewArgon2Hasher(pepper string) *Argon2Hasher {
	return &Argon2Hasher{
		salt:    []byte(pepper),
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
	}
}

func (h *Argon2Hasher) Hash(secret string) string {
	key := argon2.IDKey([]byte(secret), h.salt, h.time, h.memory, h.threads, h.keyLen)
	return hex.EncodeToString(key)
}
