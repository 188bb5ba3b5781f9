package domain

import (
	"time"

	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

type Business struct {
	ID          idx.ID
	Name        string
	Category    string
	Address     string
	City        string
	State       string
	Zip         string
	Phone       string
	Description string
	Rating      *float64 // nil when the business has no rating yet
	ReviewCount int
	CreatedAt   time.Time
}

// BusinessView is a business as seen by one caller. Favorited is always
// false for anonymous callers.
type BusinessView struct {
	Business
	Favorited bool
}

type Favorite struct {
	ID         idx.ID
	UserID     idx.ID
	BusinessID idx.ID
	CreatedAt  time.Time
}
