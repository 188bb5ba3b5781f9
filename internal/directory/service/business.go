package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

// BusinessService serves the public directory. Every read takes the
// caller's user id, idx.Zero for anonymous callers, and marks the
// businesses that caller has favorited.
type BusinessService struct {
	Store store.Store
}

// List returns every business, sorted and paged as requested.
func (s *BusinessService) List(ctx context.Context, viewer idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
	page, err := s.Store.Businesses().ListBusinesses(ctx, p)
	if err != nil {
		return domain.Page[domain.BusinessView]{}, fmt.Errorf("list businesses: %w", err)
	}
	return s.annotate(ctx, viewer, page)
}

// Get returns one business or ErrBusinessNotFound.
func (s *BusinessService) Get(ctx context.Context, viewer, id idx.ID) (domain.BusinessView, error) {
	b, err := s.Store.Businesses().GetBusinessByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.BusinessView{}, ErrBusinessNotFound
	}
	if err != nil {
		return domain.BusinessView{}, fmt.Errorf("get business: %w", err)
	}

	view := domain.BusinessView{Business: b}
	if !viewer.IsZero() {
		view.Favorited, err = s.Store.Favorites().IsFavorite(ctx, viewer, id)
		if err != nil {
			return domain.BusinessView{}, fmt.Errorf("get business: favorite state: %w", err)
		}
	}
	return view, nil
}

// Search matches query as a case-insensitive substring of the name.
func (s *BusinessService) Search(ctx context.Context, viewer idx.ID, query string, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
	page, err := s.Store.Businesses().SearchByName(ctx, query, p)
	if err != nil {
		return domain.Page[domain.BusinessView]{}, fmt.Errorf("search businesses: %w", err)
	}
	return s.annotate(ctx, viewer, page)
}

// ByCity lists businesses in city, compared case-insensitively.
func (s *BusinessService) ByCity(ctx context.Context, viewer idx.ID, city string, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
	page, err := s.Store.Businesses().ListByCity(ctx, city, p)
	if err != nil {
		return domain.Page[domain.BusinessView]{}, fmt.Errorf("list businesses by city: %w", err)
	}
	return s.annotate(ctx, viewer, page)
}

// ByCategory lists businesses in category, compared case-insensitively.
func (s *BusinessService) ByCategory(ctx context.Context, viewer idx.ID, category string, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
	page, err := s.Store.Businesses().ListByCategory(ctx, category, p)
	if err != nil {
		return domain.Page[domain.BusinessView]{}, fmt.Errorf("list businesses by category: %w", err)
	}
	return s.annotate(ctx, viewer, page)
}

// annotate resolves the favorite flags of a whole page in one query.
func (s *BusinessService) annotate(ctx context.Context, viewer idx.ID, page domain.Page[domain.Business]) (domain.Page[domain.BusinessView], error) {
	favorited := map[idx.ID]bool{}
	if !viewer.IsZero() && len(page.Content) > 0 {
		ids := make([]idx.ID, len(page.Content))
		for i, b := range page.Content {
			ids[i] = b.ID
		}

		var err error
		favorited, err = s.Store.Favorites().FavoritedAmong(ctx, viewer, ids)
		if err != nil {
			return domain.Page[domain.BusinessView]{}, fmt.Errorf("favorite state: %w", err)
		}
	}

	return domain.MapPage(page, func(b domain.Business) domain.BusinessView {
		return domain.BusinessView{Business: b, Favorited: favorited[b.ID]}
	}), nil
}
