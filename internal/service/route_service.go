package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrRouteValidation = errors.New("route validation failed")
)

type RouteService struct {
	routes ports.RouteRepository
}

func NewRouteService(routes ports.RouteRepository) *RouteService {
	return &RouteService{routes: routes}
}

func (s *RouteService) List(ctx context.Context, limit, offset int) ([]domain.Route, error) {
	return s.routes.List(ctx, limit, offset)
}

func (s *RouteService) Get(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	route, err := s.routes.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

type RouteInput struct {
	Title        string
	Description  string
	DurationDays int
	BudgetRange  string
	Difficulty   string
	DistanceKM   int
	Image        string
	Stops        []RouteStopInput
}

type RouteStopInput struct {
	DayNumber     int
	Title         string
	Description   string
	Image         string
	DurationLabel string
}

func (s *RouteService) Create(ctx context.Context, input RouteInput) (*domain.Route, error) {
	fields, err := validateRouteInput(input)
	if err != nil {
		return nil, err
	}
	return s.routes.Create(ctx, *fields)
}

func (s *RouteService) Update(ctx context.Context, id uuid.UUID, input RouteInput) (*domain.Route, error) {
	fields, err := validateRouteInput(input)
	if err != nil {
		return nil, err
	}
	route, err := s.routes.Update(ctx, id, *fields)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrRouteNotFound
		}
		return err
	}
	return nil
}

func validateRouteInput(input RouteInput) (*domain.RouteFields, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrRouteValidation)
	}
	if input.DurationDays <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrRouteValidation)
	}
	if input.DistanceKM < 0 {
		return nil, fmt.Errorf("%w: distance cannot be negative", ErrRouteValidation)
	}

	stops := make([]domain.RouteStopFields, 0, len(input.Stops))
	for i, stop := range input.Stops {
		if strings.TrimSpace(stop.Title) == "" {
			return nil, fmt.Errorf("%w: stop %d has no title", ErrRouteValidation, i+1)
		}
		if stop.DayNumber <= 0 {
			return nil, fmt.Errorf("%w: stop %d has invalid day number", ErrRouteValidation, i+1)
		}
		label := strings.TrimSpace(stop.DurationLabel)
		if label == "" {
			label = "Full Day"
		}
		stops = append(stops, domain.RouteStopFields{
			DayNumber:     stop.DayNumber,
			Title:         strings.TrimSpace(stop.Title),
			Description:   strings.TrimSpace(stop.Description),
			Image:         strings.TrimSpace(stop.Image),
			DurationLabel: label,
		})
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].DayNumber < stops[j].DayNumber })

	return &domain.RouteFields{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		DurationDays: input.DurationDays,
		BudgetRange:  strings.TrimSpace(input.BudgetRange),
		Difficulty:   strings.TrimSpace(input.Difficulty),
		DistanceKM:   input.DistanceKM,
		Image:        strings.TrimSpace(input.Image),
		Stops:        stops,
	}, nil
}
