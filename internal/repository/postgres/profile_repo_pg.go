package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	const query = `
		INSERT INTO user_profile (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, avatar_url, bio, country, updated_at
	`
	var profile domain.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	const query = `
		UPDATE user_profile
		SET avatar_url = $2, bio = $3, country = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, avatar_url, bio, country, updated_at
	`
	var stored domain.Profile
	if err := r.db.GetContext(ctx, &stored, query, profile.UserID, nullStringPtr(profile.AvatarURL), profile.Bio, profile.Country); err != nil {
		return nil, err
	}
	return &stored, nil
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)
