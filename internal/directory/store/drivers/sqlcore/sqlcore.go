// Package sqlcore holds the SQL shared by the database/sql drivers. Queries
// are written once with ? placeholders; a Dialect rebinds them and classifies
// driver errors.
package sqlcore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between engines.
type Dialect struct {
	Name string

	// Rebind rewrites ? placeholders into the engine's syntax.
	Rebind func(query string) string

	// UniqueViolation reports which users column a unique violation hit
	// ("username", "email") or "" for any other unique constraint.
	UniqueViolation func(err error) (column string, ok bool)

	// ForeignKeyViolation reports whether err is a foreign key failure.
	ForeignKeyViolation func(err error) bool
}

// QuestionRebind leaves the query untouched.
func QuestionRebind(query string) string { return query }

// DollarRebind turns ? into $1, $2, ...
func DollarRebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Queries binds a connection (or transaction) to a Dialect.
type Queries struct {
	db      DBTX
	dialect Dialect
	now     func() time.Time
}

func New(db DBTX, d Dialect) *Queries {
	return &Queries{db: db, dialect: d, now: time.Now}
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, q.dialect.Rebind(query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.dialect.Rebind(query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.dialect.Rebind(query), args...)
}

func (q *Queries) Users() store.Users           { return &usersRepo{q: q} }
func (q *Queries) Businesses() store.Businesses { return &businessesRepo{q: q} }
func (q *Queries) Favorites() store.Favorites   { return &favoritesRepo{q: q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullFloatPtr(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		v := nf.Float64
		return &v
	}
	return nil
}

func mapOptionalFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// Timestamps are stored as unix milliseconds so both engines agree on the
// column type and ordering.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// escapeLike makes s match literally inside a LIKE pattern using \ as the
// escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
