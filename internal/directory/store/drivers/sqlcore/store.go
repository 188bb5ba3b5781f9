package sqlcore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
)

// Store implements store.Store over a *sql.DB. Drivers supply the dialect
// and the migration routine.
type Store struct {
	db      *sql.DB
	q       *Queries
	dialect Dialect
	migrate func(*sql.DB) error
}

func NewStore(db *sql.DB, d Dialect, migrate func(*sql.DB) error) *Store {
	return &Store{
		db:      db,
		q:       New(db, d),
		dialect: d,
		migrate: migrate,
	}
}

// DB exposes the handle for driver-specific tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) ApplyMigrations() error { return s.migrate(s.db) }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback after a successful commit is a harmless ErrTxDone.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users           { return s.q.Users() }
func (s *Store) Businesses() store.Businesses { return s.q.Businesses() }
func (s *Store) Favorites() store.Favorites   { return s.q.Favorites() }

type txStore struct {
	tx *sql.Tx
	q  *Queries
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{
		tx: tx,
		q:  New(tx, d),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op: the caller commits or rolls back and the outer DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// Migrations are applied before any transaction is started.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users           { return t.q.Users() }
func (t *txStore) Businesses() store.Businesses { return t.q.Businesses() }
func (t *txStore) Favorites() store.Favorites   { return t.q.Favorites() }

var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*txStore)(nil)
)
