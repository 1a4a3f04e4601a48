package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

func newAttractionFixture() (*AttractionService, *memoryAttractionRepo) {
	attractions := newMemoryAttractionRepo()
	return NewAttractionService(attractions, newMemoryFavoriteRepo(), newMemoryTaxonomyRepo(), newMemoryCategoryRepo()), attractions
}

func TestAttractionService_DraftsHiddenFromNonStaff(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAttractionFixture()

	activeID := repo.add(domain.Attraction{Name: "Charyn Canyon", Status: domain.AttractionStatusActive})
	draftID := repo.add(domain.Attraction{Name: "Unfinished", Status: domain.AttractionStatusDraft})

	visible, err := svc.List(ctx, domain.AttractionListFilter{}, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != activeID {
		t.Fatalf("expected only the active attraction for guests, got %d entries", len(visible))
	}

	all, err := svc.List(ctx, domain.AttractionListFilter{}, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected staff to see both attractions, got %d", len(all))
	}

	if _, err := svc.Get(ctx, draftID, false); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("expected draft to read as not found for guests, got %v", err)
	}
	if _, err := svc.Get(ctx, draftID, true); err != nil {
		t.Fatalf("expected staff to load the draft, got %v", err)
	}
}

func TestAttractionService_StatusFilterCannotWidenVisibility(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAttractionFixture()

	activeID := repo.add(domain.Attraction{Name: "Charyn Canyon", Status: domain.AttractionStatusActive})
	repo.add(domain.Attraction{Name: "Unfinished", Status: domain.AttractionStatusDraft})

	draft := domain.AttractionStatusDraft
	hidden, err := svc.List(ctx, domain.AttractionListFilter{Status: &draft}, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(hidden) != 0 {
		t.Fatalf("draft filter for a guest must intersect to empty, got %d entries", len(hidden))
	}

	active := domain.AttractionStatusActive
	visible, err := svc.List(ctx, domain.AttractionListFilter{Status: &active}, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != activeID {
		t.Fatalf("active filter for a guest should match the active row, got %d entries", len(visible))
	}

	drafts, err := svc.List(ctx, domain.AttractionListFilter{Status: &draft}, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Status != domain.AttractionStatusDraft {
		t.Fatalf("staff draft filter should match the draft row, got %d entries", len(drafts))
	}
}

func TestAttractionService_GetCountsVisit(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAttractionFixture()
	id := repo.add(domain.Attraction{Name: "Kolsai Lakes", Status: domain.AttractionStatusActive})

	first, err := svc.Get(ctx, id, false)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if first.VisitorsCount != 1 {
		t.Fatalf("expected visitors 1 after first view, got %d", first.VisitorsCount)
	}
	second, err := svc.Get(ctx, id, false)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if second.VisitorsCount != 2 {
		t.Fatalf("expected visitors 2 after second view, got %d", second.VisitorsCount)
	}
}

func TestAttractionService_CreateResolvesTaxonomy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAttractionFixture()

	created, err := svc.Create(ctx, AttractionInput{
		Name:     "Big Almaty Lake",
		Region:   "Almaty Region",
		Category: "Lake",
		Status:   domain.AttractionStatusActive,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.RegionID == uuid.Nil || created.CategoryID == uuid.Nil {
		t.Fatal("expected region and category to be resolved to rows")
	}

	// Same names resolve to the same rows.
	sibling, err := svc.Create(ctx, AttractionInput{
		Name:     "Kolsai Lakes",
		Region:   "Almaty Region",
		Category: "Lake",
		Status:   domain.AttractionStatusActive,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if sibling.RegionID != created.RegionID || sibling.CategoryID != created.CategoryID {
		t.Fatal("expected repeated names to reuse the same taxonomy rows")
	}

	if _, err := svc.Create(ctx, AttractionInput{Name: "", Region: "r", Category: "c"}); !errors.Is(err, ErrAttractionValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestAttractionService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAttractionFixture()
	id := repo.add(domain.Attraction{Name: "Charyn Canyon", Status: domain.AttractionStatusActive})
	userID := uuid.New()

	status, err := svc.ToggleFavorite(ctx, userID, id)
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if status != "added" {
		t.Fatalf("expected added, got %q", status)
	}

	status, err = svc.ToggleFavorite(ctx, userID, id)
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if status != "removed" {
		t.Fatalf("expected removed, got %q", status)
	}

	if _, err := svc.ToggleFavorite(ctx, userID, uuid.New()); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("expected not found for unknown attraction, got %v", err)
	}
}
