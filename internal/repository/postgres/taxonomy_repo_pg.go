package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

type RegionRepository struct {
	db *sqlx.DB
}

func NewRegionRepo(db *sqlx.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, `SELECT id, name FROM region ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *RegionRepository) Create(ctx context.Context, name string) (*domain.Region, error) {
	const query = `
		INSERT INTO region (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`
	var region domain.Region
	if err := r.db.GetContext(ctx, &region, query, name); err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *RegionRepository) FindByName(ctx context.Context, name string) (*domain.Region, error) {
	var region domain.Region
	if err := r.db.GetContext(ctx, &region, `SELECT id, name FROM region WHERE name = $1`, name); err != nil {
		return nil, err
	}
	return &region, nil
}

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.SelectContext(ctx, &categories, `SELECT id, name FROM category ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	const query = `
		INSERT INTO category (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`
	var category domain.Category
	if err := r.db.GetContext(ctx, &category, query, name); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.GetContext(ctx, &category, `SELECT id, name FROM category WHERE name = $1`, name); err != nil {
		return nil, err
	}
	return &category, nil
}

var (
	_ ports.RegionRepository   = (*RegionRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)
