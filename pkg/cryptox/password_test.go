package cryptox

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheapParams keeps the suite fast; the format is identical to production.
var cheapParams = Argon2Params{
	Memory:      64,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

func newTestHasher(pepper string) *PasswordHasher {
	return NewPasswordHasherWithParams(pepper, cheapParams)
}

func TestHash_PHCFormat(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	h := newTestHasher("pepper")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"))

			parts := strings.Split(digest, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "m=64,t=1,p=1", parts[3])
			require.NotEmpty(t, parts[4])
			require.NotEmpty(t, parts[5])

			require.NoError(t, h.Verify(tt.password, digest))
			require.True(t, h.Matches(tt.password, digest))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := newTestHasher("pepper")

	d1, err := h.Hash("samepassword")
	require.NoError(t, err)
	d2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, d1, d2)
	require.True(t, h.Matches("samepassword", d1))
	require.True(t, h.Matches("samepassword", d2))
}

func TestHash_NeverContainsPlaintext(t *testing.T) {
	h := newTestHasher("")
	digest, err := h.Hash("hunter2-hunter2")
	require.NoError(t, err)
	require.NotContains(t, digest, "hunter2")
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newTestHasher("pepper")
	digest, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		"correct-passwor",
		strings.Repeat("x", 10000),
	} {
		t.Run(wrong[:min(len(wrong), 16)], func(t *testing.T) {
			err := h.Verify(wrong, digest)
			require.ErrorIs(t, err, ErrMismatch)
			require.False(t, h.Matches(wrong, digest))
		})
	}
}

func TestVerify_PepperIsApplied(t *testing.T) {
	digest, err := newTestHasher("pepper-one").Hash("password")
	require.NoError(t, err)

	require.True(t, newTestHasher("pepper-one").Matches("password", digest))
	require.False(t, newTestHasher("pepper-two").Matches("password", digest))
	require.False(t, newTestHasher("").Matches("password", digest))
}

func TestVerify_InvalidDigest(t *testing.T) {
	h := newTestHasher("pepper")

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"plaintext", "password"},
		{"unknown algorithm", "$scrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated bcrypt", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify("password", tt.digest)
			require.ErrorIs(t, err, ErrUnsupportedHash)
			require.False(t, h.Matches("password", tt.digest))
		})
	}
}

func TestVerify_LegacyBcrypt(t *testing.T) {
	h := newTestHasher("pepper-is-ignored-for-bcrypt")

	raw, err := bcrypt.GenerateFromPassword([]byte("pw12345"), bcrypt.MinCost)
	require.NoError(t, err)
	digest := string(raw)

	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		t.Run(prefix, func(t *testing.T) {
			d := prefix + strings.TrimPrefix(digest, "$2a$")
			require.True(t, h.Matches("pw12345", d))
			require.ErrorIs(t, h.Verify("pw1234", d), ErrMismatch)
			require.True(t, h.NeedsRehash(d))
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	h := newTestHasher("pepper")
	current, err := h.Hash("password")
	require.NoError(t, err)
	require.False(t, h.NeedsRehash(current))

	stronger := NewPasswordHasherWithParams("pepper", Argon2Params{
		Memory: 128, Iterations: 2, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})
	require.True(t, stronger.NeedsRehash(current))
	require.True(t, h.NeedsRehash("garbage"))
}

func TestBurnCycles_Concurrent(t *testing.T) {
	h := newTestHasher("pepper")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.BurnCycles("whatever")
		}()
	}
	wg.Wait()
	require.NotEmpty(t, h.dummy)
	require.True(t, strings.HasPrefix(h.dummy, "$argon2id$"))
}

func TestDefaultParams(t *testing.T) {
	h := NewPasswordHasher("pepper")
	digest, err := h.Hash("password")
	require.NoError(t, err)

	require.Contains(t, digest, "m=19456,t=2,p=1")
	require.True(t, h.Matches("password", digest))
}
