package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

type AttractionRepository interface {
	Create(ctx context.Context, fields domain.AttractionFields) (*domain.Attraction, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.AttractionFields) (*domain.Attraction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attraction, error)
	List(ctx context.Context, filter domain.AttractionListFilter) ([]domain.Attraction, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attraction, error)
	IncrementVisitors(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	SumVisitors(ctx context.Context) (int64, error)
	TopByVisitors(ctx context.Context, limit int) ([]domain.Attraction, error)
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Attraction, error)
}
