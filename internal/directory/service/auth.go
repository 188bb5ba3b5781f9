package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/cryptox"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/aussiebroadwan/hiddengems/pkg/jwtx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"
)

// Auth operation and outcome labels reported to the AuthObserver.
const (
	OpRegister = "register"
	OpLogin    = "login"

	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeFailure  = "failure"
	OutcomeError    = "error"
)

type AuthService struct {
	Store   store.Store
	Hasher  *cryptox.PasswordHasher
	Codec   *jwtx.Codec
	Metrics AuthObserver     // optional
	Now     func() time.Time // optional, defaults to time.Now
}

// Register creates an account and signs its first session token.
//
// The existence checks only short-circuit the common case. Two concurrent
// registrations for the same name both pass them, and the unique constraints
// in the store decide the winner; the loser gets the same ConflictError.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.AuthResult, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		s.observe(OpRegister, OutcomeInvalid)
		return domain.AuthResult{}, ErrInvalidRegistration
	}

	users := s.Store.Users()

	taken, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return s.registerFailed(ctx, "check username", err)
	}
	if taken {
		log.Info("registration rejected", slog.String("reason", ErrUsernameTaken.Reason))
		s.observe(OpRegister, OutcomeConflict)
		return domain.AuthResult{}, ErrUsernameTaken
	}

	taken, err = users.ExistsByEmail(ctx, email)
	if err != nil {
		return s.registerFailed(ctx, "check email", err)
	}
	if taken {
		conflict := preferUsername(ctx, users, username, ErrEmailTaken)
		log.Info("registration rejected", slog.String("reason", conflict.Reason))
		s.observe(OpRegister, OutcomeConflict)
		return domain.AuthResult{}, conflict
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return s.registerFailed(ctx, "hash password", err)
	}

	user := domain.User{
		ID:           idx.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := users.CreateUser(ctx, user); err != nil {
		var conflict *ConflictError
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			conflict = ErrUsernameTaken
		case errors.Is(err, store.ErrEmailExists):
			conflict = preferUsername(ctx, users, username, ErrEmailTaken)
		default:
			return s.registerFailed(ctx, "create user", err)
		}
		log.Info("registration lost insert race", slog.String("reason", conflict.Reason))
		s.observe(OpRegister, OutcomeConflict)
		return domain.AuthResult{}, conflict
	}

	result, err := s.issue(user)
	if err != nil {
		return s.registerFailed(ctx, "issue token", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	s.observe(OpRegister, OutcomeSuccess)
	return result, nil
}

// preferUsername reports ErrUsernameTaken when the username has been taken
// by now, otherwise conflict. A registration racing a committed duplicate
// then gets the reason it would have got had it run afterwards.
func preferUsername(ctx context.Context, users store.Users, username string, conflict *ConflictError) *ConflictError {
	if taken, err := users.ExistsByUsername(ctx, username); err == nil && taken {
		return ErrUsernameTaken
	}
	return conflict
}

// Login verifies a username or email plus password and signs a session
// token. Unknown accounts and wrong passwords return the identical
// ErrInvalidCredentials after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.AuthResult, error) {
	log := slogx.FromContext(ctx)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		s.Hasher.BurnCycles(password)
		s.observe(OpLogin, OutcomeFailure)
		return domain.AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		s.Hasher.BurnCycles(password)
		log.Info("login failed")
		s.observe(OpLogin, OutcomeFailure)
		return domain.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to look up user", slog.Any("error", err))
		s.observe(OpLogin, OutcomeError)
		return domain.AuthResult{}, fmt.Errorf("login: %w", err)
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			log.Error("stored password hash is unusable",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err),
			)
		}
		log.Info("login failed", slog.String("user_id", user.ID.String()))
		s.observe(OpLogin, OutcomeFailure)
		return domain.AuthResult{}, ErrInvalidCredentials
	}

	if s.Hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, password)
	}

	result, err := s.issue(user)
	if err != nil {
		log.Error("failed to issue token", slog.Any("error", err))
		s.observe(OpLogin, OutcomeError)
		return domain.AuthResult{}, fmt.Errorf("login: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	s.observe(OpLogin, OutcomeSuccess)
	return result, nil
}

// rehash upgrades a legacy or outdated digest after a successful login.
// Failure is logged and otherwise ignored; the old digest still verifies.
func (s *AuthService) rehash(ctx context.Context, userID idx.ID, password string) {
	log := slogx.FromContext(ctx).With(slog.String("user_id", userID.String()))

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Warn("failed to rehash password", slog.Any("error", err))
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		log.Warn("failed to store rehashed password", slog.Any("error", err))
		return
	}
	log.Info("password hash upgraded")
}

func (s *AuthService) issue(user domain.User) (domain.AuthResult, error) {
	token, err := s.Codec.Issue(user.ID, user.Username)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *AuthService) registerFailed(ctx context.Context, step string, err error) (domain.AuthResult, error) {
	slogx.FromContext(ctx).Error("registration failed", slog.String("step", step), slog.Any("error", err))
	s.observe(OpRegister, OutcomeError)
	return domain.AuthResult{}, fmt.Errorf("register: %s: %w", step, err)
}

func (s *AuthService) observe(op, outcome string) {
	if s.Metrics != nil {
		s.Metrics.ObserveAuth(op, outcome)
	}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
