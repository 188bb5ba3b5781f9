package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortField names a sortable business column.
type SortField string

const (
	SortByName        SortField = "name"
	SortByCity        SortField = "city"
	SortByRating      SortField = "rating"
	SortByReviewCount SortField = "reviewCount"
)

// PageRequest is a zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort SortField
	Desc bool
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int { return p.Page * p.Size }

// ParsePageRequest reads the page, size and sort query values. Empty values
// take defaults; size is clamped to MaxPageSize. sort is "field" or
// "field,asc|desc".
func ParsePageRequest(page, size, sort string) (PageRequest, error) {
	p := PageRequest{Size: DefaultPageSize, Sort: SortByName}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return p, fmt.Errorf("page must be a non-negative integer")
		}
		p.Page = n
	}

	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 1 {
			return p, fmt.Errorf("size must be a positive integer")
		}
		p.Size = min(n, MaxPageSize)
	}

	if sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		switch SortField(strings.TrimSpace(field)) {
		case SortByName, SortByCity, SortByRating, SortByReviewCount:
			p.Sort = SortField(strings.TrimSpace(field))
		default:
			return p, fmt.Errorf("sort must be one of name, city, rating, reviewCount")
		}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			p.Desc = true
		default:
			return p, fmt.Errorf("sort direction must be asc or desc")
		}
	}

	// Guard the offset against overflow on absurd page numbers.
	if p.Page > (1<<31)/p.Size {
		return p, fmt.Errorf("page out of range")
	}

	return p, nil
}

// Page is one slice of a listing plus the metadata clients page with.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	TotalPages    int
	Size          int
	Number        int
}

// NewPage computes the page metadata for content taken from total rows.
func NewPage[T any](content []T, total int64, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Size:          req.Size,
		Number:        req.Page,
	}
}

// MapPage converts the content of a page, keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{
		Content:       out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Size:          p.Size,
		Number:        p.Number,
	}
}
