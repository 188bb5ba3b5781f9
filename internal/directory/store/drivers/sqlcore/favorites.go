package sqlcore

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

type favoritesRepo struct {
	q *Queries
}

func (r *favoritesRepo) AddFavorite(ctx context.Context, f domain.Favorite) (bool, error) {
	created := f.CreatedAt
	if created.IsZero() {
		created = r.q.now()
	}

	res, err := r.q.exec(ctx,
		`INSERT INTO favorites (id, user_id, business_id, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, business_id) DO NOTHING`,
		f.ID.String(), f.UserID.String(), f.BusinessID.String(), toMillis(created))
	if err != nil {
		if r.q.dialect.ForeignKeyViolation(err) {
			return false, store.ErrNotFound
		}
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *favoritesRepo) RemoveFavorite(ctx context.Context, userID, businessID idx.ID) (bool, error) {
	res, err := r.q.exec(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND business_id = ?`,
		userID.String(), businessID.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *favoritesRepo) IsFavorite(ctx context.Context, userID, businessID idx.ID) (bool, error) {
	var n int
	err := r.q.queryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND business_id = ?`,
		userID.String(), businessID.String()).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *favoritesRepo) FavoritedAmong(ctx context.Context, userID idx.ID, businessIDs []idx.ID) (map[idx.ID]bool, error) {
	out := make(map[idx.ID]bool, len(businessIDs))
	if len(businessIDs) == 0 {
		return out, nil
	}

	args := make([]any, 0, len(businessIDs)+1)
	args = append(args, userID.String())
	for _, id := range businessIDs {
		args = append(args, id.String())
	}

	rows, err := r.q.query(ctx,
		`SELECT business_id FROM favorites WHERE user_id = ? AND business_id IN (`+placeholders(len(businessIDs))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("favorited among: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[idx.ID(id)] = true
	}
	return out, rows.Err()
}

func (r *favoritesRepo) ListFavoriteBusinesses(ctx context.Context, userID idx.ID, p domain.PageRequest) (domain.Page[domain.Business], error) {
	var total int64
	if err := r.q.queryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID.String()).Scan(&total); err != nil {
		return domain.Page[domain.Business]{}, fmt.Errorf("count favorites: %w", err)
	}
	if total == 0 || int64(p.Offset()) >= total {
		return domain.NewPage[domain.Business](nil, total, p), nil
	}

	rows, err := r.q.query(ctx,
		`SELECT b.id, b.name, b.category, b.address, b.city, b.state, b.zip, b.phone,
		        b.description, b.rating, b.review_count, b.created_at
		   FROM favorites f
		   JOIN businesses b ON b.id = f.business_id
		  WHERE f.user_id = ?
		  ORDER BY f.created_at DESC, f.id DESC
		  LIMIT ? OFFSET ?`,
		userID.String(), p.Size, p.Offset())
	if err != nil {
		return domain.Page[domain.Business]{}, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Business, 0, p.Size)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return domain.Page[domain.Business]{}, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Business]{}, err
	}

	return domain.NewPage(items, total, p), nil
}
