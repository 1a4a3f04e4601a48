package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

type RouteRepository interface {
	Create(ctx context.Context, fields domain.RouteFields) (*domain.Route, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.RouteFields) (*domain.Route, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)
	List(ctx context.Context, limit, offset int) ([]domain.Route, error)
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Route, error)
}
