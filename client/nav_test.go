package client

import (
	"testing"

	"github.com/google/uuid"
)

func TestNavigator_StartsAtHome(t *testing.T) {
	nav := NewNavigator()
	if _, ok := nav.Current().(HomePage); !ok {
		t.Fatalf("fresh navigator is on %T, want HomePage", nav.Current())
	}
	if nav.SelectedID() != nil {
		t.Fatal("fresh navigator must have no selected id")
	}
}

func TestNavigator_DetailPageSetsSelectedID(t *testing.T) {
	nav := NewNavigator()
	id := uuid.New()

	nav.Go(AttractionDetailPage{ID: id})
	if _, ok := nav.Current().(AttractionDetailPage); !ok {
		t.Fatalf("current page is %T, want AttractionDetailPage", nav.Current())
	}
	got := nav.SelectedID()
	if got == nil || *got != id {
		t.Fatalf("selected id is %v, want %s", got, id)
	}
}

func TestNavigator_PlainPageKeepsSelection(t *testing.T) {
	nav := NewNavigator()
	id := uuid.New()
	nav.Go(RouteDetailPage{ID: id})

	nav.Go(RoutesPage{})
	if _, ok := nav.Current().(RoutesPage); !ok {
		t.Fatalf("current page is %T, want RoutesPage", nav.Current())
	}
	got := nav.SelectedID()
	if got == nil || *got != id {
		t.Fatal("leaving a detail page must not clear the selection")
	}

	next := uuid.New()
	nav.Go(AdminRouteEditPage{ID: next})
	if got := nav.SelectedID(); got == nil || *got != next {
		t.Fatal("a new detail page must replace the selection")
	}
}

func TestNavigator_SelectedIDIsACopy(t *testing.T) {
	nav := NewNavigator()
	id := uuid.New()
	nav.Go(AttractionDetailPage{ID: id})

	first := nav.SelectedID()
	*first = uuid.New()
	if got := nav.SelectedID(); *got != id {
		t.Fatal("mutating the returned id leaked into the navigator")
	}
}

func TestNavigator_SubscribersSeeEveryTransition(t *testing.T) {
	nav := NewNavigator()
	var seen []Page
	nav.Subscribe(func(p Page) { seen = append(seen, p) })

	nav.Go(LoginPage{})
	nav.Go(AttractionsPage{})
	if len(seen) != 2 {
		t.Fatalf("subscriber saw %d transitions, want 2", len(seen))
	}
	if _, ok := seen[0].(LoginPage); !ok {
		t.Fatalf("first notification was %T, want LoginPage", seen[0])
	}
	if _, ok := seen[1].(AttractionsPage); !ok {
		t.Fatalf("second notification was %T, want AttractionsPage", seen[1])
	}
}
