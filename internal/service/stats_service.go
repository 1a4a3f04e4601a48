package service

import (
	"context"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

const popularDestinationCount = 5

// DashboardStats feeds the admin landing page.
type DashboardStats struct {
	TotalUsers          int64               `json:"total_users"`
	TotalAttractions    int64               `json:"total_attractions"`
	PendingReviews      int64               `json:"pending_reviews"`
	TotalPageViews      int64               `json:"total_page_views"`
	PopularDestinations []domain.Attraction `json:"popular_destinations"`
}

type StatsService struct {
	users       ports.UserRepository
	attractions ports.AttractionRepository
	reviews     ports.ReviewRepository
}

func NewStatsService(users ports.UserRepository, attractions ports.AttractionRepository, reviews ports.ReviewRepository) *StatsService {
	return &StatsService{users: users, attractions: attractions, reviews: reviews}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAttractions, err := s.attractions.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingReviews, err := s.reviews.CountByStatus(ctx, domain.ReviewStatusPending)
	if err != nil {
		return nil, err
	}
	pageViews, err := s.attractions.SumVisitors(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.attractions.TopByVisitors(ctx, popularDestinationCount)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:          totalUsers,
		TotalAttractions:    totalAttractions,
		PendingReviews:      pendingReviews,
		TotalPageViews:      pageViews,
		PopularDestinations: popular,
	}, nil
}
