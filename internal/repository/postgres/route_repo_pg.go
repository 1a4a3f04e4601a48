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

type RouteRepository struct {
	db *sqlx.DB
}

func NewRouteRepo(db *sqlx.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `id, title, description, duration_days, budget_range, difficulty, distance_km, image, created_at`

func (r *RouteRepository) Create(ctx context.Context, fields domain.RouteFields) (*domain.Route, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.GetContext(ctx, &id, `
		INSERT INTO route (title, description, duration_days, budget_range, difficulty, distance_km, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, fields.Title, fields.Description, fields.DurationDays, fields.BudgetRange, fields.Difficulty, fields.DistanceKM, fields.Image)
	if err != nil {
		return nil, err
	}

	if err := insertStops(ctx, tx, id, fields.Stops); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *RouteRepository) Update(ctx context.Context, id uuid.UUID, fields domain.RouteFields) (*domain.Route, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE route SET
			title = $2, description = $3, duration_days = $4,
			budget_range = $5, difficulty = $6, distance_km = $7, image = $8
		WHERE id = $1
	`, id, fields.Title, fields.Description, fields.DurationDays, fields.BudgetRange, fields.Difficulty, fields.DistanceKM, fields.Image)
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

	// Stops are replaced wholesale; the admin form always submits the full
	// ordered list.
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_stop WHERE route_id = $1`, id); err != nil {
		return nil, err
	}
	if err := insertStops(ctx, tx, id, fields.Stops); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func insertStops(ctx context.Context, tx *sqlx.Tx, routeID uuid.UUID, stops []domain.RouteStopFields) error {
	for _, stop := range stops {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO route_stop (route_id, day_number, title, description, image, duration_label)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, routeID, stop.DayNumber, stop.Title, stop.Description, stop.Image, stop.DurationLabel)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *RouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM route WHERE id = $1`, id)
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

func (r *RouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	var route domain.Route
	query := fmt.Sprintf(`SELECT %s FROM route WHERE id = $1`, routeColumns)
	if err := r.db.GetContext(ctx, &route, query, id); err != nil {
		return nil, err
	}
	if err := r.attachStops(ctx, []*domain.Route{&route}); err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *RouteRepository) List(ctx context.Context, limit, offset int) ([]domain.Route, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM route ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`, routeColumns)

	routes, err := r.collect(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return routes, r.attachStopsSlice(ctx, routes)
}

func (r *RouteRepository) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Route, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	clauses := make([]string, 0, len(keywords))
	args := []any{}
	idx := 1
	for _, kw := range keywords {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", idx, idx))
		args = append(args, "%"+kw+"%")
		idx++
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s FROM route
		WHERE %s
		ORDER BY created_at ASC
		LIMIT $%d
	`, routeColumns, strings.Join(clauses, " OR "), idx)

	routes, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return routes, r.attachStopsSlice(ctx, routes)
}

func (r *RouteRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Route, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var route domain.Route
		if err := rows.StructScan(&route); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func (r *RouteRepository) attachStopsSlice(ctx context.Context, routes []domain.Route) error {
	ptrs := make([]*domain.Route, len(routes))
	for i := range routes {
		ptrs[i] = &routes[i]
	}
	return r.attachStops(ctx, ptrs)
}

func (r *RouteRepository) attachStops(ctx context.Context, routes []*domain.Route) error {
	if len(routes) == 0 {
		return nil
	}
	ids := make([]string, len(routes))
	byID := make(map[uuid.UUID]*domain.Route, len(routes))
	for i, route := range routes {
		ids[i] = route.ID.String()
		byID[route.ID] = route
		route.Stops = []domain.RouteStop{}
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, route_id, day_number, title, description, image, duration_label
		FROM route_stop
		WHERE route_id = ANY($1)
		ORDER BY day_number ASC, id ASC
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var stop domain.RouteStop
		if err := rows.StructScan(&stop); err != nil {
			return err
		}
		if route, ok := byID[stop.RouteID]; ok {
			route.Stops = append(route.Stops, stop)
		}
	}
	return rows.Err()
}

var _ ports.RouteRepository = (*RouteRepository)(nil)
