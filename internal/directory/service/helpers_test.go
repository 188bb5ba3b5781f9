package service_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/hiddengems/pkg/cryptox"
	"github.com/aussiebroadwan/hiddengems/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("s3cr3t-", 6)

// cheapParams keeps argon2id fast enough for unit tests.
var cheapParams = cryptox.Argon2Params{
	Memory:      64,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

func newStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	codec, err := jwtx.NewCodec(jwtx.Options{
		Secret: testSecret,
		TTL:    time.Hour,
		Issuer: "hiddengems",
	})
	require.NoError(t, err)
	return codec
}

func newAuthService(t *testing.T, s store.Store) (*service.AuthService, *recorder) {
	t.Helper()

	rec := &recorder{}
	return &service.AuthService{
		Store:   s,
		Hasher:  cryptox.NewPasswordHasherWithParams("pepper", cheapParams),
		Codec:   newCodec(t),
		Metrics: rec,
	}, rec
}

func seed(t *testing.T, s store.Store) {
	t.Helper()

	n, err := (&service.SeedService{Store: s}).Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

// recorder captures observer calls.
type recorder struct {
	mu        sync.Mutex
	auth      []string
	favorites []string
}

func (r *recorder) ObserveAuth(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auth = append(r.auth, op+":"+outcome)
}

func (r *recorder) ObserveFavorite(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = append(r.favorites, action)
}

func (r *recorder) authCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.auth...)
}

func (r *recorder) favoriteCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.favorites...)
}

// blindStore hides existing accounts from the existence checks so
// registrations race all the way to the insert.
type blindStore struct{ store.Store }

func (s blindStore) Users() store.Users { return blindUsers{s.Store.Users()} }

type blindUsers struct{ store.Users }

func (blindUsers) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (blindUsers) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }

// lateStore answers the first username check as if a competing
// registration had not committed yet. With hideEmail the email check is
// blinded too, so the request reaches the insert.
type lateStore struct {
	store.Store
	hideEmail bool
	checked   *atomic.Bool
}

func newLateStore(s store.Store, hideEmail bool) lateStore {
	return lateStore{Store: s, hideEmail: hideEmail, checked: new(atomic.Bool)}
}

func (s lateStore) Users() store.Users { return lateUsers{Users: s.Store.Users(), s: s} }

type lateUsers struct {
	store.Users
	s lateStore
}

func (u lateUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if !u.s.checked.Swap(true) {
		return false, nil
	}
	return u.Users.ExistsByUsername(ctx, username)
}

func (u lateUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if u.s.hideEmail {
		return false, nil
	}
	return u.Users.ExistsByEmail(ctx, email)
}
