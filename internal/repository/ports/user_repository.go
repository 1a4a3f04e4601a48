package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProfileRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

type FavoriteRepository interface {
	// Toggle adds the attraction to the user's favorites if absent, removes
	// it if present, and reports whether it is now favorited.
	Toggle(ctx context.Context, userID, attractionID uuid.UUID) (bool, error)
	ListAttractionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
