package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"
)

// Favorite actions reported to the FavoriteObserver.
const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

type FavoriteService struct {
	Store   store.Store
	Metrics FavoriteObserver // optional
	Now     func() time.Time // optional, defaults to time.Now
}

// Add marks the business as a favorite of the user. Adding an existing
// favorite is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, businessID idx.ID) error {
	fav := domain.Favorite{
		ID:         idx.New(),
		UserID:     userID,
		BusinessID: businessID,
		CreatedAt:  s.now(),
	}

	inserted, err := s.Store.Favorites().AddFavorite(ctx, fav)
	if errors.Is(err, store.ErrNotFound) {
		return ErrBusinessNotFound
	}
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	if inserted {
		slogx.FromContext(ctx).Debug("favorite added", slog.String("business_id", businessID.String()))
		s.observe(FavoriteAdded)
	}
	return nil
}

// Remove drops the favorite. Removing a favorite that does not exist is a
// no-op, but the business itself must exist.
func (s *FavoriteService) Remove(ctx context.Context, userID, businessID idx.ID) error {
	removed, err := s.Store.Favorites().RemoveFavorite(ctx, userID, businessID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if removed {
		slogx.FromContext(ctx).Debug("favorite removed", slog.String("business_id", businessID.String()))
		s.observe(FavoriteRemoved)
		return nil
	}

	if _, err := s.Store.Businesses().GetBusinessByID(ctx, businessID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// Toggle flips the favorite state and returns the new one.
func (s *FavoriteService) Toggle(ctx context.Context, userID, businessID idx.ID) (bool, error) {
	var favorited bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		removed, err := tx.Favorites().RemoveFavorite(ctx, userID, businessID)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}

		_, err = tx.Favorites().AddFavorite(ctx, domain.Favorite{
			ID:         idx.New(),
			UserID:     userID,
			BusinessID: businessID,
			CreatedAt:  s.now(),
		})
		if err != nil {
			return err
		}
		favorited = true
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, ErrBusinessNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	if favorited {
		s.observe(FavoriteAdded)
	} else {
		s.observe(FavoriteRemoved)
	}
	slogx.FromContext(ctx).Debug("favorite toggled",
		slog.String("business_id", businessID.String()),
		slog.Bool("favorited", favorited),
	)
	return favorited, nil
}

// List returns the user's favorite businesses, most recently added first.
// Every entry is Favorited.
func (s *FavoriteService) List(ctx context.Context, userID idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
	page, err := s.Store.Favorites().ListFavoriteBusinesses(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.BusinessView]{}, fmt.Errorf("list favorites: %w", err)
	}
	return domain.MapPage(page, func(b domain.Business) domain.BusinessView {
		return domain.BusinessView{Business: b, Favorited: true}
	}), nil
}

func (s *FavoriteService) observe(action string) {
	if s.Metrics != nil {
		s.Metrics.ObserveFavorite(action)
	}
}

func (s *FavoriteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
