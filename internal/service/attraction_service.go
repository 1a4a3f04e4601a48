package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

var (
	ErrAttractionNotFound   = errors.New("attraction not found")
	ErrAttractionValidation = errors.New("attraction validation failed")
)

type AttractionService struct {
	attractions ports.AttractionRepository
	favorites   ports.FavoriteRepository
	regions     ports.RegionRepository
	categories  ports.CategoryRepository
}

func NewAttractionService(
	attractions ports.AttractionRepository,
	favorites ports.FavoriteRepository,
	regions ports.RegionRepository,
	categories ports.CategoryRepository,
) *AttractionService {
	return &AttractionService{
		attractions: attractions,
		favorites:   favorites,
		regions:     regions,
		categories:  categories,
	}
}

// List applies the caller's filters. Drafts are only visible to staff.
func (s *AttractionService) List(ctx context.Context, filter domain.AttractionListFilter, isStaff bool) ([]domain.Attraction, error) {
	filter.IncludeDrafts = isStaff
	return s.attractions.List(ctx, filter)
}

// Get returns one attraction and counts the visit. Draft attractions exist
// only for staff; everyone else gets not-found rather than a hint that the
// id is real.
func (s *AttractionService) Get(ctx context.Context, id uuid.UUID, isStaff bool) (*domain.Attraction, error) {
	attraction, err := s.attractions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	if attraction.Status != domain.AttractionStatusActive && !isStaff {
		return nil, ErrAttractionNotFound
	}
	if err := s.attractions.IncrementVisitors(ctx, id); err != nil {
		return nil, err
	}
	attraction.VisitorsCount++
	return attraction, nil
}

type AttractionInput struct {
	Name        string
	Region      string
	Category    string
	Description string
	Image       string
	Latitude    *float64
	Longitude   *float64
	Status      domain.AttractionStatus
	EntranceFee string
	BestTime    string
}

func (s *AttractionService) Create(ctx context.Context, input AttractionInput) (*domain.Attraction, error) {
	fields, err := s.resolveFields(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.attractions.Create(ctx, *fields)
}

func (s *AttractionService) Update(ctx context.Context, id uuid.UUID, input AttractionInput) (*domain.Attraction, error) {
	fields, err := s.resolveFields(ctx, input)
	if err != nil {
		return nil, err
	}
	attraction, err := s.attractions.Update(ctx, id, *fields)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	return attraction, nil
}

func (s *AttractionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.attractions.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrAttractionNotFound
		}
		return err
	}
	return nil
}

// ToggleFavorite flips the favorite mark and reports "added" or "removed",
// matching what the SPA shows in its toast.
func (s *AttractionService) ToggleFavorite(ctx context.Context, userID, attractionID uuid.UUID) (string, error) {
	if _, err := s.attractions.FindByID(ctx, attractionID); err != nil {
		if isNotFound(err) {
			return "", ErrAttractionNotFound
		}
		return "", err
	}
	added, err := s.favorites.Toggle(ctx, userID, attractionID)
	if err != nil {
		return "", err
	}
	if added {
		return "added", nil
	}
	return "removed", nil
}

// resolveFields validates input and resolves region/category names to rows,
// creating missing ones. The admin form submits free-text names, so unknown
// ones become new taxonomy rows.
func (s *AttractionService) resolveFields(ctx context.Context, input AttractionInput) (*domain.AttractionFields, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrAttractionValidation)
	}
	region := strings.TrimSpace(input.Region)
	if region == "" {
		return nil, fmt.Errorf("%w: region required", ErrAttractionValidation)
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category required", ErrAttractionValidation)
	}
	status := input.Status
	if status == "" {
		status = domain.AttractionStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrAttractionValidation, input.Status)
	}

	regionRow, err := s.regions.Create(ctx, region)
	if err != nil {
		return nil, err
	}
	categoryRow, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	return &domain.AttractionFields{
		Name:        name,
		RegionID:    regionRow.ID,
		CategoryID:  categoryRow.ID,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Status:      status,
		EntranceFee: strings.TrimSpace(input.EntranceFee),
		BestTime:    strings.TrimSpace(input.BestTime),
	}, nil
}
