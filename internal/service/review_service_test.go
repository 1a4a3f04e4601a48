package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

func seedReviewFixture(t *testing.T) (*ReviewService, *memoryReviewRepo, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()
	reviews := newMemoryReviewRepo()
	attractions := newMemoryAttractionRepo()
	attractionID := attractions.add(domain.Attraction{Name: "Charyn Canyon", Status: domain.AttractionStatusActive})
	author := uuid.New()
	other := uuid.New()
	return NewReviewService(reviews, attractions), reviews, attractionID, author, other
}

func TestReviewService_CreateStartsPending(t *testing.T) {
	ctx := context.Background()
	svc, _, attractionID, author, _ := seedReviewFixture(t)

	review, err := svc.Create(ctx, author, attractionID, 5, "Stunning views")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if review.Status != domain.ReviewStatusPending {
		t.Fatalf("expected new review pending, got %s", review.Status)
	}
}

func TestReviewService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, attractionID, author, _ := seedReviewFixture(t)

	if _, err := svc.Create(ctx, author, attractionID, 0, "text"); !errors.Is(err, ErrReviewValidation) {
		t.Fatalf("expected validation error for rating 0, got %v", err)
	}
	if _, err := svc.Create(ctx, author, attractionID, 6, "text"); !errors.Is(err, ErrReviewValidation) {
		t.Fatalf("expected validation error for rating 6, got %v", err)
	}
	if _, err := svc.Create(ctx, author, attractionID, 4, "   "); !errors.Is(err, ErrReviewValidation) {
		t.Fatalf("expected validation error for empty text, got %v", err)
	}
	if _, err := svc.Create(ctx, author, uuid.New(), 4, "text"); !errors.Is(err, ErrReviewValidation) {
		t.Fatalf("expected validation error for unknown attraction, got %v", err)
	}
}

func TestReviewService_ListVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _, attractionID, author, other := seedReviewFixture(t)

	mine, err := svc.Create(ctx, author, attractionID, 4, "My pending review")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	theirs, err := svc.Create(ctx, other, attractionID, 5, "Their review")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Moderate(ctx, theirs.ID, domain.ReviewStatusApproved, ""); err != nil {
		t.Fatalf("Moderate returned error: %v", err)
	}

	// Anonymous callers see only the approved review.
	anon, err := svc.List(ctx, domain.ReviewListFilter{}, nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(anon) != 1 || anon[0].ID != theirs.ID {
		t.Fatalf("expected anonymous list to contain only the approved review, got %d entries", len(anon))
	}

	// The author sees approved plus their own pending one.
	own, err := svc.List(ctx, domain.ReviewListFilter{}, &Viewer{UserID: author})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("expected author to see 2 reviews, got %d", len(own))
	}

	// Staff see everything and may filter by status.
	pending := domain.ReviewStatusPending
	staff, err := svc.List(ctx, domain.ReviewListFilter{Status: &pending}, &Viewer{UserID: uuid.New(), IsStaff: true})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(staff) != 1 || staff[0].ID != mine.ID {
		t.Fatalf("expected staff pending filter to return the pending review, got %d entries", len(staff))
	}

	// Non-staff cannot use the status filter to widen what they see.
	widened, err := svc.List(ctx, domain.ReviewListFilter{Status: &pending}, &Viewer{UserID: other})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for _, review := range widened {
		if review.Status != domain.ReviewStatusApproved && review.AuthorID != other {
			t.Fatalf("non-staff viewer saw a foreign non-approved review %s", review.ID)
		}
	}
}

func TestReviewService_ListPartitionsByStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, attractionID, author, _ := seedReviewFixture(t)

	var created []*domain.Review
	for i := 0; i < 6; i++ {
		review, err := svc.Create(ctx, author, attractionID, 3, "review")
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		created = append(created, review)
	}
	if _, err := svc.Moderate(ctx, created[0].ID, domain.ReviewStatusApproved, ""); err != nil {
		t.Fatalf("Moderate returned error: %v", err)
	}
	if _, err := svc.Moderate(ctx, created[1].ID, domain.ReviewStatusApproved, ""); err != nil {
		t.Fatalf("Moderate returned error: %v", err)
	}
	if _, err := svc.Moderate(ctx, created[2].ID, domain.ReviewStatusRejected, "off topic"); err != nil {
		t.Fatalf("Moderate returned error: %v", err)
	}

	staff := &Viewer{UserID: uuid.New(), IsStaff: true}
	all, err := svc.List(ctx, domain.ReviewListFilter{}, staff)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	// Every review falls into exactly one of the three buckets.
	counts := map[domain.ReviewStatus]int{}
	for _, review := range all {
		if !review.Status.Valid() {
			t.Fatalf("review %s has status outside the domain: %q", review.ID, review.Status)
		}
		counts[review.Status]++
	}
	if counts[domain.ReviewStatusApproved] != 2 || counts[domain.ReviewStatusRejected] != 1 || counts[domain.ReviewStatusPending] != 3 {
		t.Fatalf("unexpected partition: %v", counts)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 reviews total, got %d", len(all))
	}
}

func TestReviewService_ModerateRequiresReasonForRejection(t *testing.T) {
	ctx := context.Background()
	svc, _, attractionID, author, _ := seedReviewFixture(t)

	review, err := svc.Create(ctx, author, attractionID, 2, "Meh")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Moderate(ctx, review.ID, domain.ReviewStatusRejected, "  "); !errors.Is(err, ErrReviewModeration) {
		t.Fatalf("expected moderation error for empty reason, got %v", err)
	}
	if _, err := svc.Moderate(ctx, review.ID, domain.ReviewStatusPending, ""); !errors.Is(err, ErrReviewModeration) {
		t.Fatalf("expected moderation error for pending target, got %v", err)
	}

	rejected, err := svc.Moderate(ctx, review.ID, domain.ReviewStatusRejected, "spam")
	if err != nil {
		t.Fatalf("Moderate returned error: %v", err)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "spam" {
		t.Fatalf("expected rejection reason to be kept, got %v", rejected.RejectionReason)
	}

	if _, err := svc.Moderate(ctx, uuid.New(), domain.ReviewStatusApproved, ""); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected not found for unknown review, got %v", err)
	}
}
