package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"
)

// SeedService fills an empty directory with sample businesses.
type SeedService struct {
	Store store.Store
}

// SampleBusinesses are the businesses Seed inserts.
func SampleBusinesses() []domain.Business {
	rating := func(r float64) *float64 { return &r }
	return []domain.Business{
		{
			Name: "Sally Bell's Kitchen", Category: "Restaurants",
			Address: "102 W Broad St", City: "Richmond", State: "VA", Zip: "23220",
			Phone:       "804-644-2838",
			Description: "Historic Richmond lunch spot known for box lunches and sweet potato biscuits.",
			Rating:      rating(4.6), ReviewCount: 320,
		},
		{
			Name: "Strawberry Street Cafe", Category: "Cafes",
			Address: "421 N Strawberry St", City: "Richmond", State: "VA", Zip: "23220",
			Phone:       "804-353-6860",
			Description: "Eclectic cafe in a converted grocery with bathtub salad bar.",
			Rating:      rating(4.4), ReviewCount: 512,
		},
		{
			Name: "Blackbird Bakery", Category: "Bakeries",
			Address: "1620 Ownby Ln", City: "Richmond", State: "VA", Zip: "23220",
			Description: "Artisan breads and pastries.",
			Rating:      rating(4.8), ReviewCount: 189,
		},
		{
			Name: "Mama J's Kitchen", Category: "Soul Food",
			Address: "415 N 1st St", City: "Richmond", State: "VA", Zip: "23219",
			Phone:       "804-225-7449",
			Description: "Soul food and Southern comfort in Jackson Ward.",
			Rating:      rating(4.7), ReviewCount: 420,
		},
		{
			Name: "VMFA Museum Shop", Category: "Museums",
			Address: "200 N Blvd", City: "Richmond", State: "VA", Zip: "23220",
			Phone:       "804-340-1400",
			Description: "Virginia Museum of Fine Arts museum and cafe.",
			Rating:      rating(4.9), ReviewCount: 2100,
		},
	}
}

// Seed inserts SampleBusinesses when the directory is empty and reports
// how many were inserted. A non-empty directory is left untouched.
func (s *SeedService) Seed(ctx context.Context) (int, error) {
	log := slogx.FromContext(ctx)

	inserted := 0
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Businesses().Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Debug("directory already populated, skipping seed", slog.Int64("businesses", n))
			return nil
		}

		now := time.Now()
		for _, b := range SampleBusinesses() {
			b.ID = idx.New()
			b.CreatedAt = now
			if err := tx.Businesses().CreateBusiness(ctx, b); err != nil {
				return fmt.Errorf("%s: %w", b.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed businesses: %w", err)
	}

	if inserted > 0 {
		log.Info("seeded sample businesses", slog.Int("count", inserted))
	}
	return inserted, nil
}
