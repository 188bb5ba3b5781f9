package sqlite

import (
	"database/sql"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/hiddengems/internal/directory/store/drivers/sqlcore"
	_ "modernc.org/sqlite"
)

// Dialect is the sqlite flavour of the shared queries.
var Dialect = sqlcore.Dialect{
	Name:                "sqlite",
	Rebind:              sqlcore.QuestionRebind,
	UniqueViolation:     uniqueViolation,
	ForeignKeyViolation: foreignKeyViolation,
}

// NewStore opens the database at path (":memory:" for a throwaway one).
// Foreign keys are enforced on every pooled connection through the DSN.
func NewStore(path string) (*sqlcore.Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: is its own database, so pin the pool to one.
	if isMemory(path) {
		db.SetMaxOpenConns(1)
	}

	return sqlcore.NewStore(db, Dialect, applyMigrations), nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

func dsn(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	if !isMemory(path) {
		params.Add("_pragma", "journal_mode(WAL)")
		// Take the write lock at BEGIN so concurrent writers queue on
		// busy_timeout instead of failing on lock upgrade.
		params.Set("_txlock", "immediate")
	}

	if isMemory(path) {
		return "file::memory:?" + params.Encode()
	}
	return "file:" + path + "?" + params.Encode()
}
