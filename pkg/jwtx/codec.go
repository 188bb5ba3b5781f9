package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest signing secret the codec accepts.
const MinSecretLength = 32

// placeholderSecrets are values that show up in sample configs and must never
// sign real tokens. Compared case-insensitively after trimming.
var placeholderSecrets = map[string]struct{}{
	"change-me":           {},
	"changeme":            {},
	"change_me":           {},
	"secret":              {},
	"jwt-secret":          {},
	"your-secret-key":     {},
	"your-256-bit-secret": {},

	// Shipped development default, longer than 32
	// characters and therefore only caught here.
	"default-dev-secret-change-in-production-to-secure-key-32-chars-minimum": {},
}

// Options configures a Codec.
type Options struct {
	// Secret is the HMAC key. Required, at least MinSecretLength characters
	// and not a known placeholder.
	Secret string

	// TTL is the lifetime of every issued token.
	TTL time.Duration

	// Issuer is stamped into "iss" and enforced on verify when non-empty.
	Issuer string

	// Now overrides the clock, tests use it to move time forward.
	Now func() time.Time
}

// Codec issues and verifies HS256 session tokens. It holds only immutable
// key material after construction and is safe for concurrent use.
type Codec struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewCodec validates the options and builds a Codec. A weak secret yields a
// *ConfigurationError; callers treat it as fatal.
func NewCodec(opts Options) (*Codec, error) {
	if err := ValidateSecret(opts.Secret); err != nil {
		return nil, err
	}
	if opts.TTL <= 0 {
		return nil, &ConfigurationError{Reason: "token lifetime must be positive", Err: ErrInvalidTTL}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Codec{
		key:    []byte(opts.Secret),
		ttl:    opts.TTL,
		issuer: opts.Issuer,
		now:    now,
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	c.parser = jwt.NewParser(parserOpts...)

	return c, nil
}

// ValidateSecret reports why secret cannot be used to sign tokens.
func ValidateSecret(secret string) error {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return &ConfigurationError{Reason: "signing secret is not set", Err: ErrWeakSecret}
	}
	if _, ok := placeholderSecrets[strings.ToLower(trimmed)]; ok {
		return &ConfigurationError{Reason: "signing secret is a placeholder value", Err: ErrWeakSecret}
	}
	if n := utf8.RuneCountInString(secret); n < MinSecretLength {
		return &ConfigurationError{
			Reason: fmt.Sprintf("signing secret must be at least %d characters, got %d", MinSecretLength, n),
			Err:    ErrWeakSecret,
		}
	}
	return nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the user.
func (c *Codec) Issue(userID idx.ID, username string) (string, error) {
	if userID.IsZero() {
		return "", errors.New("jwtx: cannot issue token for zero user id")
	}

	claims := NewSessionClaims(userID.String(), username, c.issuer, c.ttl, c.now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Verify reports whether the token is well-formed, correctly signed,
// unexpired and names a valid subject. Every failure collapses to false.
func (c *Codec) Verify(token string) bool {
	_, ok := c.Resolve(token)
	return ok
}

// SubjectOf returns the user ID carried by a verified token. Anything that
// would make Verify false returns an error wrapping ErrParse.
func (c *Codec) SubjectOf(token string) (idx.ID, error) {
	claims, err := c.parse(token)
	if err != nil {
		return idx.Zero, fmt.Errorf("%w: %v", ErrParse, err)
	}

	id, err := idx.Parse(claims.Subject)
	if err != nil {
		return idx.Zero, fmt.Errorf("%w: subject: %v", ErrParse, err)
	}
	return id, nil
}

// Resolve combines Verify and SubjectOf: ok is false for any invalid token.
func (c *Codec) Resolve(token string) (idx.ID, bool) {
	id, err := c.SubjectOf(token)
	if err != nil {
		return idx.Zero, false
	}
	return id, true
}

// Claims returns the verified claims of a token.
func (c *Codec) Claims(token string) (Claims, error) {
	claims, err := c.parse(token)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return *claims, nil
}

func (c *Codec) parse(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, jwt.ErrTokenMalformed
	}

	claims := &Claims{}
	parsed, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
