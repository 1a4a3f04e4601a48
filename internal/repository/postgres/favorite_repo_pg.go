package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Toggle(ctx context.Context, userID, attractionID uuid.UUID) (bool, error) {
	const insert = `
		INSERT INTO favorite (user_id, attraction_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, attraction_id) DO NOTHING
		RETURNING id
	`
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, insert, userID, attractionID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	// Already favorited, so the toggle removes it.
	_, err = r.db.ExecContext(ctx, `DELETE FROM favorite WHERE user_id = $1 AND attraction_id = $2`, userID, attractionID)
	if err != nil {
		return false, err
	}
	return false, nil
}

func (r *FavoriteRepository) ListAttractionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT attraction_id FROM favorite
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
