package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store/storetest"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, newFileStore)
}

func TestMemoryStore(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))

	n, err := s.Businesses().Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.db")

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Users().CreateUser(context.Background(), storetest.NewUser("alice")))
	require.NoError(t, s.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.NoError(t, reopened.ApplyMigrations())

	ok, err := reopened.Users().ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDeleteUserCascadesFavorites(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	u := storetest.NewUser("alice")
	b := storetest.NewBusiness("Cafe", "Cafes", nil)
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.Businesses().CreateBusiness(ctx, b))
	_, err = s.Favorites().AddFavorite(ctx, domain.Favorite{ID: idx.New(), UserID: u.ID, BusinessID: b.ID})
	require.NoError(t, err)

	_, err = s.DB().ExecContext(ctx, "DELETE FROM users WHERE id = ?", u.ID.String())
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM favorites").Scan(&n))
	require.Zero(t, n)
}
