package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch is returned when a plaintext does not match a digest.
	ErrMismatch = errors.New("password does not match")

	// ErrUnsupportedHash is returned for digests in an unknown format.
	ErrUnsupportedHash = errors.New("unsupported password hash format")
)

// Argon2Params are the cost parameters encoded into every new digest.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  uint32
}

// DefaultArgon2Params follows the OWASP minimum for argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// PasswordHasher produces salted one-way digests of passwords and verifies
// plaintexts against them.
//
// New digests are argon2id in PHC string format, computed over
// password+pepper. Digests imported from the previous deployment are bcrypt
// ($2a$, $2b$, $2y$) without pepper; those still verify, and NeedsRehash
// reports them so callers can upgrade on the next successful login.
type PasswordHasher struct {
	pepper string
	params Argon2Params

	dummyOnce sync.Once
	dummy     string
}

// NewPasswordHasher returns a hasher using DefaultArgon2Params.
func NewPasswordHasher(pepper string) *PasswordHasher {
	return NewPasswordHasherWithParams(pepper, DefaultArgon2Params)
}

// NewPasswordHasherWithParams returns a hasher with explicit argon2 costs.
func NewPasswordHasherWithParams(pepper string, params Argon2Params) *PasswordHasher {
	return &PasswordHasher{pepper: pepper, params: params}
}

// Hash generates a PHC-format argon2id digest including salt and parameters.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(plaintext+h.pepper),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify compares a plaintext against a digest. It returns nil on a match,
// ErrMismatch on a wrong password and a wrapped ErrUnsupportedHash when the
// digest cannot be parsed.
func (h *PasswordHasher) Verify(plaintext, digest string) error {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return h.verifyArgon2(plaintext, digest)
	case isBcrypt(digest):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedHash, err)
		}
		return nil
	default:
		return ErrUnsupportedHash
	}
}

// Matches reports whether plaintext matches digest. Any parse failure is a
// mismatch.
func (h *PasswordHasher) Matches(plaintext, digest string) bool {
	return h.Verify(plaintext, digest) == nil
}

// NeedsRehash reports whether digest was produced by a legacy algorithm or
// with parameters other than the hasher's current ones.
func (h *PasswordHasher) NeedsRehash(digest string) bool {
	if isBcrypt(digest) {
		return true
	}
	p, _, _, err := decodeArgon2(digest)
	if err != nil {
		return true
	}
	return p.Memory != h.params.Memory ||
		p.Iterations != h.params.Iterations ||
		p.Parallelism != h.params.Parallelism
}

// BurnCycles runs a full comparison against a throwaway digest and discards
// the result. Login calls it for unknown accounts so both failure paths cost
// the same.
func (h *PasswordHasher) BurnCycles(plaintext string) {
	h.dummyOnce.Do(func() {
		d, err := h.Hash("not-a-real-password")
		if err == nil {
			h.dummy = d
		}
	})
	_ = h.Matches(plaintext, h.dummy)
}

func (h *PasswordHasher) verifyArgon2(plaintext, digest string) error {
	p, salt, expected, err := decodeArgon2(digest)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(plaintext+h.pepper),
		salt,
		p.Iterations,
		p.Memory,
		p.Parallelism,
		uint32(len(expected)), // #nosec G115 - bounded by the decoded digest
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

// decodeArgon2 parses $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func decodeArgon2(digest string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return p, nil, nil, fmt.Errorf("%w: expected 6 parts", ErrUnsupportedHash)
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: not argon2id", ErrUnsupportedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return p, nil, nil, fmt.Errorf("%w: wrong version", ErrUnsupportedHash)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %v", ErrUnsupportedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrUnsupportedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: hash: %v", ErrUnsupportedHash, err)
	}
	if len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: empty hash", ErrUnsupportedHash)
	}

	p.SaltLength = uint32(len(salt)) // #nosec G115
	p.KeyLength = uint32(len(key))   // #nosec G115
	return p, salt, key, nil
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
