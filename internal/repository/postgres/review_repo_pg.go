package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewSelect = `
	SELECT
		r.id,
		r.author_id,
		r.attraction_id,
		r.rating,
		r.text,
		r.created_at,
		r.status,
		r.rejection_reason,
		u.username AS author_name,
		a.name AS attraction_name
	FROM review r
	JOIN user_account u ON u.id = r.author_id
	JOIN attraction a ON a.id = r.attraction_id
`

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO review (author_id, attraction_id, rating, text, status)
		VALUES (:author_id, :attraction_id, :rating, :text, :status)
		RETURNING id
	`
	args := map[string]any{
		"author_id":     review.AuthorID,
		"attraction_id": review.AttractionID,
		"rating":        review.Rating,
		"text":          review.Text,
		"status":        review.Status,
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
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.GetContext(ctx, &review, reviewSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) List(ctx context.Context, filter domain.ReviewListFilter, visibility domain.ReviewVisibility) ([]domain.Review, error) {
	clauses := []string{"TRUE"}
	args := []any{}
	idx := 1

	if filter.AttractionID != nil {
		clauses = append(clauses, fmt.Sprintf("r.attraction_id = $%d", idx))
		args = append(args, *filter.AttractionID)
		idx++
	}

	switch {
	case visibility.IsStaff:
		if filter.Status != nil {
			clauses = append(clauses, fmt.Sprintf("r.status = $%d", idx))
			args = append(args, *filter.Status)
			idx++
		}
	case visibility.ViewerID != nil:
		// Approved reviews plus the viewer's own, whatever their status.
		clauses = append(clauses, fmt.Sprintf("(r.status = 'approved' OR r.author_id = $%d)", idx))
		args = append(args, *visibility.ViewerID)
		idx++
	default:
		clauses = append(clauses, "r.status = 'approved'")
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

	query := fmt.Sprintf(`%s WHERE %s ORDER BY r.created_at DESC, r.id DESC LIMIT $%d OFFSET $%d`,
		reviewSelect, strings.Join(clauses, " AND "), idx, idx+1)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.StructScan(&review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, reason *string) error {
	const query = `
		UPDATE review
		SET status = $2, rejection_reason = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, status, nullStringPtr(reason))
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

func (r *ReviewRepository) CountByStatus(ctx context.Context, status domain.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM review WHERE status = $1`, status)
	return count, err
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
