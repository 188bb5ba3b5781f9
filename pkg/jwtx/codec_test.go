package jwtx_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/aussiebroadwan/hiddengems/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef-test"

// fakeClock is advanced by hand; tests in this file never share one across
// goroutines while mutating it.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newCodec(t *testing.T, clock *fakeClock) *jwtx.Codec {
	t.Helper()
	c, err := jwtx.NewCodec(jwtx.Options{
		Secret: testSecret,
		TTL:    time.Hour,
		Issuer: "hiddengems",
		Now:    clock.Now,
	})
	require.NoError(t, err)
	return c
}

func TestNewCodec_RejectsWeakSecrets(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"blank", "      "},
		{"ten characters", "abcdefghij"},
		{"31 characters", strings.Repeat("x", 31)},
		{"placeholder", "change-me"},
		{"placeholder any case", "  CHANGE-ME "},
		{"shipped dev default", "default-dev-secret-change-in-production-to-secure-key-32-chars-minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := jwtx.NewCodec(jwtx.Options{Secret: tt.secret, TTL: time.Hour})
			require.Nil(t, c)

			var cfgErr *jwtx.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.ErrorIs(t, err, jwtx.ErrWeakSecret)
		})
	}
}

func TestNewCodec_RejectsNonPositiveTTL(t *testing.T) {
	_, err := jwtx.NewCodec(jwtx.Options{Secret: testSecret})
	require.ErrorIs(t, err, jwtx.ErrInvalidTTL)

	_, err = jwtx.NewCodec(jwtx.Options{Secret: testSecret, TTL: -time.Second})
	require.ErrorIs(t, err, jwtx.ErrInvalidTTL)
}

func TestNewCodec_AcceptsExactly32Characters(t *testing.T) {
	_, err := jwtx.NewCodec(jwtx.Options{Secret: strings.Repeat("k", 32), TTL: time.Minute})
	require.NoError(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	c := newCodec(t, clock)
	userID := idx.New()

	token, err := c.Issue(userID, "alice")
	require.NoError(t, err)
	require.True(t, c.Verify(token))

	sub, err := c.SubjectOf(token)
	require.NoError(t, err)
	require.Equal(t, userID, sub)

	claims, err := c.Claims(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "hiddengems", claims.Issuer)
	require.Equal(t, clock.Now(), claims.IssuedAt.Time.UTC())
	require.Equal(t, time.Hour, claims.Lifetime())
}

func TestIssue_RejectsZeroUser(t *testing.T) {
	c := newCodec(t, &fakeClock{t: time.Now()})
	_, err := c.Issue(idx.Zero, "nobody")
	require.Error(t, err)
}

func TestVerify_ExpiresAfterLifetime(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	c := newCodec(t, clock)

	token, err := c.Issue(idx.New(), "alice")
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	require.True(t, c.Verify(token), "token should still be valid inside its lifetime")

	clock.Advance(2 * time.Minute)
	require.False(t, c.Verify(token), "token should be invalid once the lifetime elapsed")

	_, err = c.SubjectOf(token)
	require.ErrorIs(t, err, jwtx.ErrParse)
}

func TestVerify_GarbageNeverPanics(t *testing.T) {
	c := newCodec(t, &fakeClock{t: time.Now()})

	inputs := []string{
		"",
		" ",
		"garbage",
		"a.b.c",
		"....",
		"eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.",
		"Bearer abc",
		strings.Repeat("A", 4096),
		"\x00\x01\x02",
	}

	for _, in := range inputs {
		require.NotPanics(t, func() {
			require.False(t, c.Verify(in))
			_, ok := c.Resolve(in)
			require.False(t, ok)
			_, err := c.SubjectOf(in)
			require.ErrorIs(t, err, jwtx.ErrParse)
		})
	}
}

func TestVerify_RejectsForgedTokens(t *testing.T) {
	clock := &fakeClock{t: time.Now().UTC()}
	c := newCodec(t, clock)
	userID := idx.New()
	claims := jwtx.NewSessionClaims(userID.String(), "alice", "hiddengems", time.Hour, clock.Now())

	t.Run("different secret", func(t *testing.T) {
		other, err := jwtx.NewCodec(jwtx.Options{
			Secret: strings.Repeat("z", 40),
			TTL:    time.Hour,
			Issuer: "hiddengems",
			Now:    clock.Now,
		})
		require.NoError(t, err)

		token, err := other.Issue(userID, "alice")
		require.NoError(t, err)
		require.False(t, c.Verify(token))
	})

	t.Run("alg none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		require.False(t, c.Verify(token))
	})

	t.Run("other hmac algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		require.False(t, c.Verify(token))
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := c.Issue(userID, "alice")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		forged := jwtx.NewSessionClaims(idx.New().String(), "mallory", "hiddengems", time.Hour, clock.Now())
		tmp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString([]byte("not-the-secret"))
		require.NoError(t, err)
		parts[1] = strings.Split(tmp, ".")[1]

		require.False(t, c.Verify(strings.Join(parts, ".")))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		bad := jwtx.NewSessionClaims(userID.String(), "alice", "someone-else", time.Hour, clock.Now())
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, bad).SignedString([]byte(testSecret))
		require.NoError(t, err)
		require.False(t, c.Verify(token))
	})

	t.Run("non ulid subject", func(t *testing.T) {
		bad := jwtx.NewSessionClaims("42", "alice", "hiddengems", time.Hour, clock.Now())
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, bad).SignedString([]byte(testSecret))
		require.NoError(t, err)
		require.False(t, c.Verify(token))
	})

	t.Run("missing expiry", func(t *testing.T) {
		bad := jwtx.NewSessionClaims(userID.String(), "alice", "hiddengems", time.Hour, clock.Now())
		bad.ExpiresAt = nil
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, bad).SignedString([]byte(testSecret))
		require.NoError(t, err)
		require.False(t, c.Verify(token))
	})
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c, err := jwtx.NewCodec(jwtx.Options{Secret: testSecret, TTL: time.Hour})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := idx.New()
			token, err := c.Issue(id, "user")
			if err != nil {
				t.Error(err)
				return
			}
			got, ok := c.Resolve(token)
			if !ok || got != id {
				t.Errorf("resolve mismatch: %v %v", got, ok)
			}
		}()
	}
	wg.Wait()
}
