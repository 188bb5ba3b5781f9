package sqlcore

import (
	"testing"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/stretchr/testify/require"
)

func TestDollarRebind(t *testing.T) {
	require.Equal(t,
		`SELECT 1 FROM t WHERE a = $1 AND b IN ($2,$3) LIMIT $4`,
		DollarRebind(`SELECT 1 FROM t WHERE a = ? AND b IN (?,?) LIMIT ?`))
	require.Equal(t, `SELECT 1`, DollarRebind(`SELECT 1`))
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `100\% pure`, escapeLike(`100% pure`))
	require.Equal(t, `a\_b`, escapeLike(`a_b`))
	require.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	require.Equal(t, `plain`, escapeLike(`plain`))
}

func TestPlaceholders(t *testing.T) {
	require.Equal(t, "", placeholders(0))
	require.Equal(t, "?", placeholders(1))
	require.Equal(t, "?,?,?", placeholders(3))
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		req  domain.PageRequest
		want string
	}{
		{domain.PageRequest{}, "ORDER BY name ASC, id"},
		{domain.PageRequest{Sort: domain.SortByCity, Desc: true}, "ORDER BY city DESC, id"},
		{domain.PageRequest{Sort: domain.SortByReviewCount}, "ORDER BY review_count ASC, id"},
		{domain.PageRequest{Sort: domain.SortByRating, Desc: true}, "ORDER BY (rating IS NULL), rating DESC, id"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, orderBy("", tt.req))
	}
	require.Equal(t, "ORDER BY b.name ASC, b.id", orderBy("b.", domain.PageRequest{}))
}
