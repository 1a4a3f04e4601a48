package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

type AttractionRepository struct {
	db *sqlx.DB
}

func NewAttractionRepo(db *sqlx.DB) *AttractionRepository {
	return &AttractionRepository{db: db}
}

// attractionColumns joins region/category names and folds approved-review
// aggregates into every row so list and detail responses carry rating and
// reviews_count without extra round trips.
const attractionColumns = `
	a.id,
	a.name,
	a.region_id,
	a.category_id,
	a.description,
	a.image,
	a.latitude,
	a.longitude,
	a.visitors_count,
	a.status,
	a.entrance_fee,
	a.best_time,
	a.created_at,
	rg.name AS region_name,
	cat.name AS category_name,
	COALESCE(ROUND(AVG(rv.rating) FILTER (WHERE rv.status = 'approved')::numeric, 1), 0)::float8 AS rating,
	COUNT(rv.id)::int AS reviews_count
`

const attractionJoins = `
	FROM attraction a
	JOIN region rg ON rg.id = a.region_id
	JOIN category cat ON cat.id = a.category_id
	LEFT JOIN review rv ON rv.attraction_id = a.id
`

const attractionGroupBy = `GROUP BY a.id, rg.name, cat.name`

func (r *AttractionRepository) Create(ctx context.Context, fields domain.AttractionFields) (*domain.Attraction, error) {
	const query = `
		INSERT INTO attraction (
			name, region_id, category_id, description, image,
			latitude, longitude, status, entrance_fee, best_time
		) VALUES (
			:name, :region_id, :category_id, :description, :image,
			:latitude, :longitude, :status, :entrance_fee, :best_time
		)
		RETURNING id
	`

	args := map[string]any{
		"name":         fields.Name,
		"region_id":    fields.RegionID,
		"category_id":  fields.CategoryID,
		"description":  fields.Description,
		"image":        fields.Image,
		"latitude":     nullFloat(fields.Latitude),
		"longitude":    nullFloat(fields.Longitude),
		"status":       fields.Status,
		"entrance_fee": fields.EntranceFee,
		"best_time":    fields.BestTime,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	var id uuid.UUID
	if err := rows.Scan(&id); err != nil {
		return nil, err
	}
	rows.Close()
	return r.FindByID(ctx, id)
}

func (r *AttractionRepository) Update(ctx context.Context, id uuid.UUID, fields domain.AttractionFields) (*domain.Attraction, error) {
	const query = `
		UPDATE attraction SET
			name = :name,
			region_id = :region_id,
			category_id = :category_id,
			description = :description,
			image = :image,
			latitude = :latitude,
			longitude = :longitude,
			status = :status,
			entrance_fee = :entrance_fee,
			best_time = :best_time
		WHERE id = :id
	`

	args := map[string]any{
		"id":           id,
		"name":         fields.Name,
		"region_id":    fields.RegionID,
		"category_id":  fields.CategoryID,
		"description":  fields.Description,
		"image":        fields.Image,
		"latitude":     nullFloat(fields.Latitude),
		"longitude":    nullFloat(fields.Longitude),
		"status":       fields.Status,
		"entrance_fee": fields.EntranceFee,
		"best_time":    fields.BestTime,
	}

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

func (r *AttractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attraction WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AttractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attraction, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.id = $1 %s`, attractionColumns, attractionJoins, attractionGroupBy)

	var attraction domain.Attraction
	if err := r.db.GetContext(ctx, &attraction, query, id); err != nil {
		return nil, err
	}
	return &attraction, nil
}

func (r *AttractionRepository) List(ctx context.Context, filter domain.AttractionListFilter) ([]domain.Attraction, error) {
	clauses := []string{"TRUE"}
	args := []any{}
	idx := 1

	// Both constraints apply: a non-staff caller asking for drafts
	// intersects down to an empty list rather than widening visibility.
	if !filter.IncludeDrafts {
		clauses = append(clauses, fmt.Sprintf("a.status = $%d", idx))
		args = append(args, domain.AttractionStatusActive)
		idx++
	}
	if filter.Status != nil {
		clauses = append(clauses, fmt.Sprintf("a.status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.Region != "" {
		clauses = append(clauses, fmt.Sprintf("rg.name ILIKE $%d", idx))
		args = append(args, "%"+filter.Region+"%")
		idx++
	}
	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("cat.name ILIKE $%d", idx))
		args = append(args, "%"+filter.Category+"%")
		idx++
	}
	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(a.name ILIKE $%d OR a.description ILIKE $%d)", idx, idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	order := "a.created_at DESC, a.id DESC"
	switch filter.Sort {
	case domain.AttractionSortName:
		order = "a.name ASC"
	case domain.AttractionSortNameDesc:
		order = "a.name DESC"
	case domain.AttractionSortVisitors:
		order = "a.visitors_count ASC"
	case domain.AttractionSortVisitorsDesc:
		order = "a.visitors_count DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, attractionColumns, attractionJoins, strings.Join(clauses, " AND "), attractionGroupBy, order, idx, idx+1)

	return r.collect(ctx, query, args...)
}

func (r *AttractionRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attraction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.id = ANY($1)
		%s
		ORDER BY a.name ASC
	`, attractionColumns, attractionJoins, attractionGroupBy)

	return r.collect(ctx, query, pq.Array(raw))
}

func (r *AttractionRepository) IncrementVisitors(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE attraction SET visitors_count = visitors_count + 1 WHERE id = $1`, id)
	return err
}

func (r *AttractionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM attraction`)
	return count, err
}

func (r *AttractionRepository) SumVisitors(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(visitors_count), 0) FROM attraction`)
	return total, err
}

func (r *AttractionRepository) TopByVisitors(ctx context.Context, limit int) ([]domain.Attraction, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE TRUE
		%s
		ORDER BY a.visitors_count DESC
		LIMIT $1
	`, attractionColumns, attractionJoins, attractionGroupBy)

	return r.collect(ctx, query, limit)
}

func (r *AttractionRepository) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Attraction, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	clauses := make([]string, 0, len(keywords))
	args := []any{}
	idx := 1
	for _, kw := range keywords {
		clauses = append(clauses, fmt.Sprintf("(a.name ILIKE $%d OR a.description ILIKE $%d OR rg.name ILIKE $%d OR cat.name ILIKE $%d)", idx, idx, idx, idx))
		args = append(args, "%"+kw+"%")
		idx++
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.status = 'active' AND (%s)
		%s
		ORDER BY a.visitors_count DESC
		LIMIT $%d
	`, attractionColumns, attractionJoins, strings.Join(clauses, " OR "), attractionGroupBy, idx)

	return r.collect(ctx, query, args...)
}

func (r *AttractionRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Attraction, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attractions []domain.Attraction
	for rows.Next() {
		var attraction domain.Attraction
		if err := rows.StructScan(&attraction); err != nil {
			return nil, err
		}
		attractions = append(attractions, attraction)
	}
	return attractions, rows.Err()
}

var _ ports.AttractionRepository = (*AttractionRepository)(nil)
