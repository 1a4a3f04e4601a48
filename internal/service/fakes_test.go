package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

// In-memory fakes for the repository ports. All return sql.ErrNoRows for
// missing rows, same as the postgres implementations.

// errDuplicate mimics the driver error the postgres repos surface on a
// unique constraint hit.
var errDuplicate = &pgconn.PgError{Code: "23505"}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, errDuplicate
		}
	}
	clone := *user
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *user
	return &out, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memoryUserRepo) setStaff(id uuid.UUID, staff bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.IsStaff = staff
	}
}

type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: map[uuid.UUID]*domain.Profile{}}
}

func (r *memoryProfileRepo) GetOrCreate(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile, ok := r.profiles[userID]; ok {
		out := *profile
		return &out, nil
	}
	profile := &domain.Profile{UserID: userID, UpdatedAt: time.Now()}
	r.profiles[userID] = profile
	out := *profile
	return &out, nil
}

func (r *memoryProfileRepo) Update(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	clone.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = &clone
	out := clone
	return &out, nil
}

type memoryFavoriteRepo struct {
	mu    sync.Mutex
	pairs map[uuid.UUID]map[uuid.UUID]bool
}

func newMemoryFavoriteRepo() *memoryFavoriteRepo {
	return &memoryFavoriteRepo{pairs: map[uuid.UUID]map[uuid.UUID]bool{}}
}

func (r *memoryFavoriteRepo) Toggle(_ context.Context, userID, attractionID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pairs[userID] == nil {
		r.pairs[userID] = map[uuid.UUID]bool{}
	}
	if r.pairs[userID][attractionID] {
		delete(r.pairs[userID], attractionID)
		return false, nil
	}
	r.pairs[userID][attractionID] = true
	return true, nil
}

func (r *memoryFavoriteRepo) ListAttractionIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id := range r.pairs[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

type memoryTaxonomyRepo struct {
	mu    sync.Mutex
	names map[string]uuid.UUID
}

func newMemoryTaxonomyRepo() *memoryTaxonomyRepo {
	return &memoryTaxonomyRepo{names: map[string]uuid.UUID{}}
}

func (r *memoryTaxonomyRepo) Create(_ context.Context, name string) (*domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.names[name]
	if !ok {
		id = uuid.New()
		r.names[name] = id
	}
	return &domain.Region{ID: id, Name: name}, nil
}

func (r *memoryTaxonomyRepo) FindByName(_ context.Context, name string) (*domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.names[name]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &domain.Region{ID: id, Name: name}, nil
}

func (r *memoryTaxonomyRepo) List(context.Context) ([]domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Region
	for name, id := range r.names {
		out = append(out, domain.Region{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// memoryCategoryRepo wraps the same storage shape with the category type.
type memoryCategoryRepo struct {
	inner *memoryTaxonomyRepo
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{inner: newMemoryTaxonomyRepo()}
}

func (r *memoryCategoryRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	region, err := r.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: region.ID, Name: region.Name}, nil
}

func (r *memoryCategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	region, err := r.inner.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: region.ID, Name: region.Name}, nil
}

func (r *memoryCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	regions, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Category
	for _, region := range regions {
		out = append(out, domain.Category{ID: region.ID, Name: region.Name})
	}
	return out, nil
}

type memoryAttractionRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Attraction
}

func newMemoryAttractionRepo() *memoryAttractionRepo {
	return &memoryAttractionRepo{items: map[uuid.UUID]*domain.Attraction{}}
}

func (r *memoryAttractionRepo) add(a domain.Attraction) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.items[a.ID] = &a
	return a.ID
}

func (r *memoryAttractionRepo) Create(_ context.Context, fields domain.AttractionFields) (*domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := &domain.Attraction{
		ID:          uuid.New(),
		Name:        fields.Name,
		RegionID:    fields.RegionID,
		CategoryID:  fields.CategoryID,
		Description: fields.Description,
		Image:       fields.Image,
		Latitude:    fields.Latitude,
		Longitude:   fields.Longitude,
		Status:      fields.Status,
		EntranceFee: fields.EntranceFee,
		BestTime:    fields.BestTime,
		CreatedAt:   time.Now(),
	}
	r.items[item.ID] = item
	out := *item
	return &out, nil
}

func (r *memoryAttractionRepo) Update(_ context.Context, id uuid.UUID, fields domain.AttractionFields) (*domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.Name = fields.Name
	item.RegionID = fields.RegionID
	item.CategoryID = fields.CategoryID
	item.Description = fields.Description
	item.Image = fields.Image
	item.Latitude = fields.Latitude
	item.Longitude = fields.Longitude
	item.Status = fields.Status
	item.EntranceFee = fields.EntranceFee
	item.BestTime = fields.BestTime
	out := *item
	return &out, nil
}

func (r *memoryAttractionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryAttractionRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *item
	return &out, nil
}

func (r *memoryAttractionRepo) List(_ context.Context, filter domain.AttractionListFilter) ([]domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attraction
	for _, item := range r.items {
		if !filter.IncludeDrafts && item.Status != domain.AttractionStatusActive {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *memoryAttractionRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attraction
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memoryAttractionRepo) IncrementVisitors(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	item.VisitorsCount++
	return nil
}

func (r *memoryAttractionRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memoryAttractionRepo) SumVisitors(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, item := range r.items {
		total += int64(item.VisitorsCount)
	}
	return total, nil
}

func (r *memoryAttractionRepo) TopByVisitors(_ context.Context, limit int) ([]domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attraction
	for _, item := range r.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitorsCount > out[j].VisitorsCount })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryAttractionRepo) SearchByKeywords(_ context.Context, keywords []string, limit int) ([]domain.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attraction
	for _, item := range r.items {
		if item.Status != domain.AttractionStatusActive {
			continue
		}
		haystack := strings.ToLower(item.Name + " " + item.Description)
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				out = append(out, *item)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memoryRouteRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Route
}

func newMemoryRouteRepo() *memoryRouteRepo {
	return &memoryRouteRepo{items: map[uuid.UUID]*domain.Route{}}
}

func (r *memoryRouteRepo) add(route domain.Route) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	r.items[route.ID] = &route
	return route.ID
}

func (r *memoryRouteRepo) Create(_ context.Context, fields domain.RouteFields) (*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route := &domain.Route{
		ID:           uuid.New(),
		Title:        fields.Title,
		Description:  fields.Description,
		DurationDays: fields.DurationDays,
		BudgetRange:  fields.BudgetRange,
		Difficulty:   fields.Difficulty,
		DistanceKM:   fields.DistanceKM,
		Image:        fields.Image,
		CreatedAt:    time.Now(),
	}
	for _, stop := range fields.Stops {
		route.Stops = append(route.Stops, domain.RouteStop{
			ID:            uuid.New(),
			RouteID:       route.ID,
			DayNumber:     stop.DayNumber,
			Title:         stop.Title,
			Description:   stop.Description,
			Image:         stop.Image,
			DurationLabel: stop.DurationLabel,
		})
	}
	r.items[route.ID] = route
	out := *route
	return &out, nil
}

func (r *memoryRouteRepo) Update(ctx context.Context, id uuid.UUID, fields domain.RouteFields) (*domain.Route, error) {
	r.mu.Lock()
	_, ok := r.items[id]
	r.mu.Unlock()
	if !ok {
		return nil, sql.ErrNoRows
	}
	created, err := r.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	delete(r.items, created.ID)
	created.ID = id
	clone := *created
	r.items[id] = &clone
	r.mu.Unlock()
	return created, nil
}

func (r *memoryRouteRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRouteRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *route
	return &out, nil
}

func (r *memoryRouteRepo) List(_ context.Context, _, _ int) ([]domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Route
	for _, route := range r.items {
		out = append(out, *route)
	}
	return out, nil
}

func (r *memoryRouteRepo) SearchByKeywords(_ context.Context, keywords []string, limit int) ([]domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Route
	for _, route := range r.items {
		haystack := strings.ToLower(route.Title + " " + route.Description)
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				out = append(out, *route)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memoryReviewRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Review
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{items: map[uuid.UUID]*domain.Review{}}
}

func (r *memoryReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *review
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memoryReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *review
	return &out, nil
}

func (r *memoryReviewRepo) List(_ context.Context, filter domain.ReviewListFilter, visibility domain.ReviewVisibility) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, review := range r.items {
		if filter.AttractionID != nil && review.AttractionID != *filter.AttractionID {
			continue
		}
		if filter.Status != nil && review.Status != *filter.Status {
			continue
		}
		if !visibility.IsStaff {
			if visibility.ViewerID != nil {
				if review.Status != domain.ReviewStatusApproved && review.AuthorID != *visibility.ViewerID {
					continue
				}
			} else if review.Status != domain.ReviewStatusApproved {
				continue
			}
		}
		out = append(out, *review)
	}
	return out, nil
}

func (r *memoryReviewRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.ReviewStatus, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	review.Status = status
	review.RejectionReason = reason
	return nil
}

func (r *memoryReviewRepo) CountByStatus(_ context.Context, status domain.ReviewStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, review := range r.items {
		if review.Status == status {
			count++
		}
	}
	return count, nil
}

type memoryBookingRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Booking
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{items: map[uuid.UUID]*domain.Booking{}}
}

func (r *memoryBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *booking
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memoryBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *booking
	return &out, nil
}

func (r *memoryBookingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, booking := range r.items {
		if booking.UserID == userID {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	for _, status := range from {
		if booking.Status == status {
			booking.Status = to
			return nil
		}
	}
	return sql.ErrNoRows
}

var (
	_ ports.UserRepository       = (*memoryUserRepo)(nil)
	_ ports.ProfileRepository    = (*memoryProfileRepo)(nil)
	_ ports.FavoriteRepository   = (*memoryFavoriteRepo)(nil)
	_ ports.RegionRepository     = (*memoryTaxonomyRepo)(nil)
	_ ports.CategoryRepository   = (*memoryCategoryRepo)(nil)
	_ ports.AttractionRepository = (*memoryAttractionRepo)(nil)
	_ ports.RouteRepository      = (*memoryRouteRepo)(nil)
	_ ports.ReviewRepository     = (*memoryReviewRepo)(nil)
	_ ports.BookingRepository    = (*memoryBookingRepo)(nil)
)
