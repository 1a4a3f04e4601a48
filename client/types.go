package client

import "github.com/google/uuid"

// View copies of the backend entities. The backend owns persistence; these
// structs only mirror the JSON it serves.

type Attraction struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Region       uuid.UUID `json:"region"`
	RegionName   string    `json:"region_name"`
	Category     uuid.UUID `json:"category"`
	CategoryName string    `json:"category_name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Status       string    `json:"status"`
	EntranceFee  string    `json:"entrance_fee"`
	BestTime     string    `json:"best_time"`
	Visitors     int       `json:"visitors_count"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviews_count"`
}

type RouteStop struct {
	ID            uuid.UUID `json:"id"`
	DayNumber     int       `json:"day_number"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	DurationLabel string    `json:"duration_label"`
}

type Route struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DurationDays int         `json:"duration_days"`
	BudgetRange  string      `json:"budget_range"`
	Difficulty   string      `json:"difficulty"`
	DistanceKM   int         `json:"distance_km"`
	Image        string      `json:"image"`
	Stops        []RouteStop `json:"stops"`
}

type Review struct {
	ID              uuid.UUID `json:"id"`
	Attraction      uuid.UUID `json:"attraction"`
	AttractionName  string    `json:"attraction_name"`
	AuthorName      string    `json:"author_name"`
	Rating          int       `json:"rating"`
	Text            string    `json:"text"`
	CreatedAt       string    `json:"created_at"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
}

type Booking struct {
	ID          uuid.UUID `json:"id"`
	Route       uuid.UUID `json:"route"`
	RouteTitle  string    `json:"route_title"`
	Date        string    `json:"date"`
	PeopleCount int       `json:"people_count"`
	TotalPrice  int       `json:"total_price"`
	Status      string    `json:"status"`
}

type Profile struct {
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	IsStaff   bool         `json:"is_staff"`
	Avatar    *string      `json:"avatar,omitempty"`
	Bio       string       `json:"bio"`
	Country   string       `json:"country"`
	Favorites []Attraction `json:"favorites"`
	Bookings  []Booking    `json:"bookings"`
}

type Region struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type DashboardStats struct {
	TotalUsers          int64        `json:"total_users"`
	TotalAttractions    int64        `json:"total_attractions"`
	PendingReviews      int64        `json:"pending_reviews"`
	TotalPageViews      int64        `json:"total_page_views"`
	PopularDestinations []Attraction `json:"popular_destinations"`
}

type Recommendation struct {
	Type        string    `json:"type"`
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

type PlannerAnswer struct {
	Reply           string           `json:"reply"`
	Recommendations []Recommendation `json:"recommendations"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
