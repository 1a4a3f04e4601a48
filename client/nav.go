package client

import (
	"sync"

	"github.com/google/uuid"
)

// Page is a closed set of navigation targets. Detail pages carry the entity
// id they need as a struct field, so navigating to a detail view without an
// id is unrepresentable.
type Page interface {
	page()
}

// DetailPage is implemented by the variants that point at one entity.
type DetailPage interface {
	Page
	EntityID() uuid.UUID
}

type (
	HomePage        struct{}
	LoginPage       struct{}
	RegisterPage    struct{}
	AttractionsPage struct{}
	RoutesPage      struct{}
	FavoritesPage   struct{}
	ProfilePage     struct{}
	PlannerPage     struct{}

	AttractionDetailPage struct{ ID uuid.UUID }
	RouteDetailPage      struct{ ID uuid.UUID }

	AdminDashboardPage   struct{}
	AdminAttractionsPage struct{}
	AdminRoutesPage      struct{}
	AdminReviewsPage     struct{}

	AdminAttractionEditPage struct{ ID uuid.UUID }
	AdminRouteEditPage      struct{ ID uuid.UUID }
)

func (HomePage) page()        {}
func (LoginPage) page()       {}
func (RegisterPage) page()    {}
func (AttractionsPage) page() {}
func (RoutesPage) page()      {}
func (FavoritesPage) page()   {}
func (ProfilePage) page()     {}
func (PlannerPage) page()     {}

func (AttractionDetailPage) page() {}
func (RouteDetailPage) page()      {}

func (AdminDashboardPage) page()   {}
func (AdminAttractionsPage) page() {}
func (AdminRoutesPage) page()      {}
func (AdminReviewsPage) page()     {}

func (AdminAttractionEditPage) page() {}
func (AdminRouteEditPage) page()      {}

func (p AttractionDetailPage) EntityID() uuid.UUID    { return p.ID }
func (p RouteDetailPage) EntityID() uuid.UUID         { return p.ID }
func (p AdminAttractionEditPage) EntityID() uuid.UUID { return p.ID }
func (p AdminRouteEditPage) EntityID() uuid.UUID      { return p.ID }

// Navigator tracks the current page and the last selected entity id. The
// selected id is only replaced when navigating to a page that carries one;
// plain pages leave it untouched so a back-and-forth between a list and a
// detail view keeps the selection.
type Navigator struct {
	mu          sync.RWMutex
	current     Page
	selectedID  *uuid.UUID
	subscribers []func(Page)
}

func NewNavigator() *Navigator {
	return &Navigator{current: HomePage{}}
}

func (n *Navigator) Current() Page {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// SelectedID returns the id of the last detail page navigated to, or nil if
// none has been visited yet.
func (n *Navigator) SelectedID() *uuid.UUID {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.selectedID == nil {
		return nil
	}
	id := *n.selectedID
	return &id
}

// Go switches to the target page unconditionally. Auth gating is the
// individual page's concern, not the navigator's.
func (n *Navigator) Go(page Page) {
	n.mu.Lock()
	n.current = page
	if detail, ok := page.(DetailPage); ok {
		id := detail.EntityID()
		n.selectedID = &id
	}
	subscribers := make([]func(Page), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.Unlock()

	for _, fn := range subscribers {
		fn(page)
	}
}

func (n *Navigator) Subscribe(fn func(Page)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}
