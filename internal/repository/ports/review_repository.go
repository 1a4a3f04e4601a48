package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewListFilter, visibility domain.ReviewVisibility) ([]domain.Review, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, reason *string) error
	CountByStatus(ctx context.Context, status domain.ReviewStatus) (int64, error)
}
