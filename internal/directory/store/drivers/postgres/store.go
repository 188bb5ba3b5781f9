package postgres

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/hiddengems/internal/directory/store/drivers/sqlcore"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Dialect is the PostgreSQL flavour of the shared queries.
var Dialect = sqlcore.Dialect{
	Name:                "postgres",
	Rebind:              sqlcore.DollarRebind,
	UniqueViolation:     uniqueViolation,
	ForeignKeyViolation: foreignKeyViolation,
}

// Store owns the pgx pool behind the database/sql handle.
type Store struct {
	*sqlcore.Store
	pool *pgxpool.Pool
}

// NewStore connects a pgx pool to dsn and exposes it through database/sql so
// the shared queries run unchanged.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	return &Store{
		Store: sqlcore.NewStore(db, Dialect, applyMigrations),
		pool:  pool,
	}, nil
}

// Close closes the database/sql handle, then the pool.
func (s *Store) Close() error {
	err := s.Store.Close()
	s.pool.Close()
	return err
}
