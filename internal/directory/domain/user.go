package domain

import (
	"time"

	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

type User struct {
	ID            idx.ID
	Username      string
	Email         string // stored lower-cased
	PasswordHash  string // argon2id PHC, or bcrypt for imported accounts
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AuthResult is what register and login hand back to the caller.
type AuthResult struct {
	Token    string
	UserID   idx.ID
	Username string
	Email    string
}
