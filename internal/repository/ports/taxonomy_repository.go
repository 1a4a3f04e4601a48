package ports

import (
	"context"

	"github.com/qaztour/qaztour-api/internal/domain"
)

type RegionRepository interface {
	List(ctx context.Context) ([]domain.Region, error)
	Create(ctx context.Context, name string) (*domain.Region, error)
	FindByName(ctx context.Context, name string) (*domain.Region, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
}
