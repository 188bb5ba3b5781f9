package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUsernameExists and ErrEmailExists narrow ErrAlreadyExists to the
	// column whose unique constraint fired.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrAlreadyExists)
	ErrEmailExists    = fmt.Errorf("%w: email", ErrAlreadyExists)
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can hand out the same repos bound to the transaction.
type Store interface {
	Users() Users
	Businesses() Businesses
	Favorites() Favorites

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn, use
	// the repos of tx, not of the outer Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id idx.ID) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsernameOrEmail matches login against either column exactly.
	// A username match wins over an email match.
	GetUserByUsernameOrEmail(ctx context.Context, login string) (domain.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Unique violations come back as ErrUsernameExists or ErrEmailExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the digest and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id idx.ID, hash string) error
}

type Businesses interface {
	Count(ctx context.Context) (int64, error)
	CreateBusiness(ctx context.Context, b domain.Business) error
	GetBusinessByID(ctx context.Context, id idx.ID) (domain.Business, error)

	ListBusinesses(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Business], error)

	// SearchByName is a case-insensitive substring match. LIKE wildcards in
	// q are matched literally.
	SearchByName(ctx context.Context, q string, p domain.PageRequest) (domain.Page[domain.Business], error)

	// ListByCity and ListByCategory are case-insensitive equality matches.
	ListByCity(ctx context.Context, city string, p domain.PageRequest) (domain.Page[domain.Business], error)
	ListByCategory(ctx context.Context, category string, p domain.PageRequest) (domain.Page[domain.Business], error)
}

type Favorites interface {
	// AddFavorite is idempotent. It returns true when a row was inserted.
	// ErrNotFound when the user or business does not exist.
	AddFavorite(ctx context.Context, f domain.Favorite) (bool, error)

	// RemoveFavorite returns true when a row was deleted.
	RemoveFavorite(ctx context.Context, userID, businessID idx.ID) (bool, error)

	IsFavorite(ctx context.Context, userID, businessID idx.ID) (bool, error)

	// FavoritedAmong returns the subset of businessIDs the user has favorited.
	FavoritedAmong(ctx context.Context, userID idx.ID, businessIDs []idx.ID) (map[idx.ID]bool, error)

	// ListFavoriteBusinesses pages through the user's favorites, newest first.
	ListFavoriteBusinesses(ctx context.Context, userID idx.ID, p domain.PageRequest) (domain.Page[domain.Business], error)
}
