// Package storetest is a conformance suite every store driver runs against
// a freshly migrated, empty database.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty, migrated store. The suite closes nothing; the
// factory registers its own cleanup.
type Factory func(t *testing.T) store.Store

// Run executes every conformance test as a subtest.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("UserUniqueness", func(t *testing.T) { testUserUniqueness(t, newStore(t)) })
	t.Run("ConcurrentCreateUser", func(t *testing.T) { testConcurrentCreateUser(t, newStore(t)) })
	t.Run("Businesses", func(t *testing.T) { testBusinesses(t, newStore(t)) })
	t.Run("Search", func(t *testing.T) { testSearch(t, newStore(t)) })
	t.Run("Favorites", func(t *testing.T) { testFavorites(t, newStore(t)) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
}

// NewUser returns a valid user with unique fields.
func NewUser(username string) domain.User {
	return domain.User{
		ID:           idx.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA",
	}
}

// NewBusiness returns a business in Richmond.
func NewBusiness(name, category string, rating *float64) domain.Business {
	return domain.Business{
		ID:          idx.New(),
		Name:        name,
		Category:    category,
		City:        "Richmond",
		State:       "VA",
		Rating:      rating,
		ReviewCount: 10,
	}
}

func ptr(f float64) *float64 { return &f }

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	users := s.Users()

	u := NewUser("alice")
	u.CreatedAt = time.UnixMilli(1_700_000_000_123).UTC()
	require.NoError(t, users.CreateUser(ctx, u))

	got, err := users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, u.PasswordHash, got.PasswordHash)
	require.False(t, got.EmailVerified)
	require.Equal(t, u.CreatedAt, got.CreatedAt)
	require.Equal(t, u.CreatedAt, got.UpdatedAt)

	byName, err := users.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byEmail, err := users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	for _, login := range []string{"alice", "alice@example.com"} {
		got, err := users.GetUserByUsernameOrEmail(ctx, login)
		require.NoError(t, err, login)
		require.Equal(t, u.ID, got.ID)
	}

	// Username matching is case-sensitive.
	_, err = users.GetUserByUsername(ctx, "ALICE")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = users.GetUserByUsernameOrEmail(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = users.GetUserByID(ctx, idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := users.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = users.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = users.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, users.UpdatePasswordHash(ctx, u.ID, "new-hash"))
	got, err = users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.True(t, got.UpdatedAt.After(u.CreatedAt))

	require.ErrorIs(t, users.UpdatePasswordHash(ctx, idx.New(), "x"), store.ErrNotFound)
}

func testUserUniqueness(t *testing.T, s store.Store) {
	ctx := context.Background()
	users := s.Users()

	require.NoError(t, users.CreateUser(ctx, NewUser("alice")))

	dupName := NewUser("alice")
	dupName.Email = "other@example.com"
	err := users.CreateUser(ctx, dupName)
	require.ErrorIs(t, err, store.ErrUsernameExists)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	require.NotErrorIs(t, err, store.ErrEmailExists)

	dupEmail := NewUser("bob")
	dupEmail.Email = "alice@example.com"
	err = users.CreateUser(ctx, dupEmail)
	require.ErrorIs(t, err, store.ErrEmailExists)
	require.NotErrorIs(t, err, store.ErrUsernameExists)

	// A username that looks like another user's email resolves to the
	// username match first.
	tricky := NewUser("alice@example.com")
	tricky.Email = "tricky@example.com"
	require.NoError(t, users.CreateUser(ctx, tricky))

	got, err := users.GetUserByUsernameOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, tricky.ID, got.ID)
}

func testConcurrentCreateUser(t *testing.T, s store.Store) {
	ctx := context.Background()

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := NewUser("racer")
			u.Email = fmt.Sprintf("racer%d@example.com", i)
			err := s.Users().CreateUser(ctx, u)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, store.ErrUsernameExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflicts)
}

func testBusinesses(t *testing.T, s store.Store) {
	ctx := context.Background()
	biz := s.Businesses()

	n, err := biz.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	fixtures := []domain.Business{
		NewBusiness("Charlie's", "Cafes", ptr(4.1)),
		NewBusiness("alpha bakery", "Bakeries", ptr(4.8)),
		NewBusiness("Bravo Diner", "Restaurants", nil),
		NewBusiness("Delta Deli", "restaurants", ptr(3.9)),
	}
	fixtures[3].City = "Norfolk"
	fixtures[0].Phone = "804-555-0100"
	fixtures[0].Description = "Coffee."
	for _, b := range fixtures {
		require.NoError(t, biz.CreateBusiness(ctx, b))
	}

	n, err = biz.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	got, err := biz.GetBusinessByID(ctx, fixtures[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Charlie's", got.Name)
	require.Equal(t, "804-555-0100", got.Phone)
	require.Equal(t, "Coffee.", got.Description)
	require.Empty(t, got.Zip)
	require.NotNil(t, got.Rating)
	require.InDelta(t, 4.1, *got.Rating, 1e-9)

	nilRating, err := biz.GetBusinessByID(ctx, fixtures[2].ID)
	require.NoError(t, err)
	require.Nil(t, nilRating.Rating)

	_, err = biz.GetBusinessByID(ctx, idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)

	page, err := biz.ListBusinesses(ctx, domain.PageRequest{Page: 0, Size: 3, Sort: domain.SortByName})
	require.NoError(t, err)
	require.Equal(t, int64(4), page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 3)

	second, err := biz.ListBusinesses(ctx, domain.PageRequest{Page: 1, Size: 3, Sort: domain.SortByName})
	require.NoError(t, err)
	require.Len(t, second.Content, 1)
	require.Equal(t, 1, second.Number)

	beyond, err := biz.ListBusinesses(ctx, domain.PageRequest{Page: 5, Size: 3})
	require.NoError(t, err)
	require.Empty(t, beyond.Content)
	require.Equal(t, int64(4), beyond.TotalElements)

	byRating, err := biz.ListBusinesses(ctx, domain.PageRequest{Size: 10, Sort: domain.SortByRating, Desc: true})
	require.NoError(t, err)
	names := make([]string, 0, len(byRating.Content))
	for _, b := range byRating.Content {
		names = append(names, b.Name)
	}
	require.Equal(t, []string{"alpha bakery", "Charlie's", "Delta Deli", "Bravo Diner"}, names)

	city, err := biz.ListByCity(ctx, "RICHMOND", domain.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), city.TotalElements)

	cat, err := biz.ListByCategory(ctx, "Restaurants", domain.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), cat.TotalElements)
}

func testSearch(t *testing.T, s store.Store) {
	ctx := context.Background()
	biz := s.Businesses()

	for _, name := range []string{"Sally Bell's Kitchen", "Strawberry Street Cafe", "100% Juice", "Under_Score"} {
		require.NoError(t, biz.CreateBusiness(ctx, NewBusiness(name, "Misc", nil)))
	}

	search := func(q string) int64 {
		t.Helper()
		p, err := biz.SearchByName(ctx, q, domain.PageRequest{Size: 10})
		require.NoError(t, err)
		return p.TotalElements
	}

	require.Equal(t, int64(1), search("kitchen"))
	require.Equal(t, int64(1), search("STRAWBERRY"))
	require.Equal(t, int64(1), search("st"))
	require.Equal(t, int64(2), search("ER"), "Strawberry and Under_Score")
	require.Equal(t, int64(4), search(""))
	require.Equal(t, int64(1), search("%"), "percent must match literally")
	require.Equal(t, int64(1), search("_"), "underscore must match literally")
	require.Equal(t, int64(0), search(`\`))
	require.Equal(t, int64(0), search("pizza"))
}

func testFavorites(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice, bob := NewUser("alice"), NewUser("bob")
	require.NoError(t, s.Users().CreateUser(ctx, alice))
	require.NoError(t, s.Users().CreateUser(ctx, bob))

	b1 := NewBusiness("One", "Cafes", nil)
	b2 := NewBusiness("Two", "Cafes", nil)
	b3 := NewBusiness("Three", "Cafes", nil)
	for _, b := range []domain.Business{b1, b2, b3} {
		require.NoError(t, s.Businesses().CreateBusiness(ctx, b))
	}

	favs := s.Favorites()
	base := time.UnixMilli(1_700_000_000_000)

	inserted, err := favs.AddFavorite(ctx, domain.Favorite{ID: idx.New(), UserID: alice.ID, BusinessID: b1.ID, CreatedAt: base})
	require.NoError(t, err)
	require.True(t, inserted)

	// Idempotent.
	inserted, err = favs.AddFavorite(ctx, domain.Favorite{ID: idx.New(), UserID: alice.ID, BusinessID: b1.ID, CreatedAt: base})
	require.NoError(t, err)
	require.False(t, inserted)

	_, err = favs.AddFavorite(ctx, domain.Favorite{ID: idx.New(), UserID: alice.ID, BusinessID: b2.ID, CreatedAt: base.Add(time.Second)})
	require.NoError(t, err)

	_, err = favs.AddFavorite(ctx, domain.Favorite{ID: idx.New(), UserID: alice.ID, BusinessID: idx.New(), CreatedAt: base})
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := favs.IsFavorite(ctx, alice.ID, b1.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = favs.IsFavorite(ctx, bob.ID, b1.ID)
	require.NoError(t, err)
	require.False(t, ok)

	among, err := favs.FavoritedAmong(ctx, alice.ID, []idx.ID{b1.ID, b2.ID, b3.ID})
	require.NoError(t, err)
	require.Equal(t, map[idx.ID]bool{b1.ID: true, b2.ID: true}, among)

	among, err = favs.FavoritedAmong(ctx, bob.ID, []idx.ID{b1.ID})
	require.NoError(t, err)
	require.Empty(t, among)

	among, err = favs.FavoritedAmong(ctx, alice.ID, nil)
	require.NoError(t, err)
	require.Empty(t, among)

	page, err := favs.ListFavoriteBusinesses(ctx, alice.ID, domain.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.TotalElements)
	require.Equal(t, []idx.ID{b2.ID, b1.ID}, []idx.ID{page.Content[0].ID, page.Content[1].ID}, "newest first")

	removed, err := favs.RemoveFavorite(ctx, alice.ID, b1.ID)
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = favs.RemoveFavorite(ctx, alice.ID, b1.ID)
	require.NoError(t, err)
	require.False(t, removed)

	empty, err := favs.ListFavoriteBusinesses(ctx, bob.ID, domain.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Empty(t, empty.Content)
	require.NotNil(t, empty.Content)
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, NewUser("rolled")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	ok, err := s.Users().ExistsByUsername(ctx, "rolled")
	require.NoError(t, err)
	require.False(t, ok)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, NewUser("committed"))
	})
	require.NoError(t, err)

	ok, err = s.Users().ExistsByUsername(ctx, "committed")
	require.NoError(t, err)
	require.True(t, ok)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err, "nested transactions are refused")

	require.NoError(t, s.Ping(ctx))
}
