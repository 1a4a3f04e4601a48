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
	ErrReviewNotFound   = errors.New("review not found")
	ErrReviewValidation = errors.New("review validation failed")
	ErrReviewModeration = errors.New("invalid moderation decision")
)

type ReviewService struct {
	reviews     ports.ReviewRepository
	attractions ports.AttractionRepository
}

func NewReviewService(reviews ports.ReviewRepository, attractions ports.AttractionRepository) *ReviewService {
	return &ReviewService{reviews: reviews, attractions: attractions}
}

// Viewer identifies who is making a request. A nil Viewer means anonymous.
type Viewer struct {
	UserID  uuid.UUID
	IsStaff bool
}

// List returns reviews the viewer is allowed to see. Staff see everything
// and may filter by status; signed-in users see approved reviews plus their
// own regardless of status; everyone else sees approved only.
func (s *ReviewService) List(ctx context.Context, filter domain.ReviewListFilter, viewer *Viewer) ([]domain.Review, error) {
	visibility := domain.ReviewVisibility{}
	if viewer != nil {
		id := viewer.UserID
		visibility.ViewerID = &id
		visibility.IsStaff = viewer.IsStaff
	}
	if !visibility.IsStaff {
		// Status filtering is a moderation tool; hide it from non-staff so
		// the filter cannot widen what they see.
		filter.Status = nil
	}
	return s.reviews.List(ctx, filter, visibility)
}

func (s *ReviewService) Create(ctx context.Context, authorID, attractionID uuid.UUID, rating int, text string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrReviewValidation)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text required", ErrReviewValidation)
	}
	if _, err := s.attractions.FindByID(ctx, attractionID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: unknown attraction", ErrReviewValidation)
		}
		return nil, err
	}

	review := &domain.Review{
		AuthorID:     authorID,
		AttractionID: attractionID,
		Rating:       rating,
		Text:         text,
		Status:       domain.ReviewStatusPending,
	}
	return s.reviews.Create(ctx, review)
}

// Moderate approves or rejects a pending review. Rejections keep the reason
// so the author can see why.
func (s *ReviewService) Moderate(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, reason string) (*domain.Review, error) {
	if status != domain.ReviewStatusApproved && status != domain.ReviewStatusRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrReviewModeration)
	}
	var reasonPtr *string
	if status == domain.ReviewStatusRejected {
		trimmed := strings.TrimSpace(reason)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: rejection requires a reason", ErrReviewModeration)
		}
		reasonPtr = &trimmed
	}

	if err := s.reviews.SetStatus(ctx, id, status, reasonPtr); err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
