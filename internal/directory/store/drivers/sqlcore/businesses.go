package sqlcore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

const businessColumns = `id, name, category, address, city, state, zip, phone, description, rating, review_count, created_at`

type businessesRepo struct {
	q *Queries
}

func scanBusiness(row interface{ Scan(...any) error }) (domain.Business, error) {
	var (
		b         domain.Business
		id        string
		nullable  [7]sql.NullString
		rating    sql.NullFloat64
		createdAt int64
	)
	err := row.Scan(&id, &b.Name,
		&nullable[0], &nullable[1], &nullable[2], &nullable[3], &nullable[4], &nullable[5], &nullable[6],
		&rating, &b.ReviewCount, &createdAt)
	if err != nil {
		return domain.Business{}, mapNotFound(err)
	}

	b.ID = idx.ID(id)
	b.Category = mapNullString(nullable[0])
	b.Address = mapNullString(nullable[1])
	b.City = mapNullString(nullable[2])
	b.State = mapNullString(nullable[3])
	b.Zip = mapNullString(nullable[4])
	b.Phone = mapNullString(nullable[5])
	b.Description = mapNullString(nullable[6])
	b.Rating = mapNullFloatPtr(rating)
	b.CreatedAt = fromMillis(createdAt)
	return b, nil
}

// orderBy renders the ORDER BY clause for a business listing. Fields come
// from a closed set so nothing user supplied reaches the SQL text. NULL
// ratings sort last in either direction on both engines.
func orderBy(prefix string, p domain.PageRequest) string {
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}

	var col string
	switch p.Sort {
	case domain.SortByCity:
		col = prefix + "city"
	case domain.SortByRating:
		return fmt.Sprintf("ORDER BY (%[1]srating IS NULL), %[1]srating %[2]s, %[1]sid", prefix, dir)
	case domain.SortByReviewCount:
		col = prefix + "review_count"
	default:
		col = prefix + "name"
	}
	return fmt.Sprintf("ORDER BY %s %s, %sid", col, dir, prefix)
}

func (r *businessesRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&n)
	return n, err
}

func (r *businessesRepo) CreateBusiness(ctx context.Context, b domain.Business) error {
	created := b.CreatedAt
	if created.IsZero() {
		created = r.q.now()
	}
	_, err := r.q.exec(ctx,
		`INSERT INTO businesses (`+businessColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID.String(), b.Name,
		mapStringNull(b.Category), mapStringNull(b.Address), mapStringNull(b.City),
		mapStringNull(b.State), mapStringNull(b.Zip), mapStringNull(b.Phone),
		mapStringNull(b.Description), mapOptionalFloat(b.Rating), b.ReviewCount,
		toMillis(created),
	)
	return err
}

func (r *businessesRepo) GetBusinessByID(ctx context.Context, id idx.ID) (domain.Business, error) {
	return scanBusiness(r.q.queryRow(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id.String()))
}

func (r *businessesRepo) ListBusinesses(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Business], error) {
	return r.page(ctx, "", nil, p)
}

func (r *businessesRepo) SearchByName(ctx context.Context, q string, p domain.PageRequest) (domain.Page[domain.Business], error) {
	pattern := "%" + escapeLike(q) + "%"
	return r.page(ctx, `WHERE LOWER(name) LIKE LOWER(?) ESCAPE '\'`, []any{pattern}, p)
}

func (r *businessesRepo) ListByCity(ctx context.Context, city string, p domain.PageRequest) (domain.Page[domain.Business], error) {
	return r.page(ctx, `WHERE LOWER(city) = LOWER(?)`, []any{strings.TrimSpace(city)}, p)
}

func (r *businessesRepo) ListByCategory(ctx context.Context, category string, p domain.PageRequest) (domain.Page[domain.Business], error) {
	return r.page(ctx, `WHERE LOWER(category) = LOWER(?)`, []any{strings.TrimSpace(category)}, p)
}

// page runs the count and the slice query for one filter.
func (r *businessesRepo) page(ctx context.Context, where string, args []any, p domain.PageRequest) (domain.Page[domain.Business], error) {
	var total int64
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM businesses `+where, args...).Scan(&total); err != nil {
		return domain.Page[domain.Business]{}, fmt.Errorf("count businesses: %w", err)
	}
	if total == 0 || int64(p.Offset()) >= total {
		return domain.NewPage[domain.Business](nil, total, p), nil
	}

	query := `SELECT ` + businessColumns + ` FROM businesses ` + where + ` ` + orderBy("", p) + ` LIMIT ? OFFSET ?`
	rows, err := r.q.query(ctx, query, append(args, p.Size, p.Offset())...)
	if err != nil {
		return domain.Page[domain.Business]{}, fmt.Errorf("list businesses: %w", err)
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
