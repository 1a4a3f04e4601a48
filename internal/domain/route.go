package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route is a multi-day curated itinerary. The ordered Stops slice is always
// loaded alongside the route, sorted by day number.
type Route struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	DurationDays int         `db:"duration_days" json:"duration_days"`
	BudgetRange  string      `db:"budget_range" json:"budget_range"`
	Difficulty   string      `db:"difficulty" json:"difficulty"`
	DistanceKM   int         `db:"distance_km" json:"distance_km"`
	Image        string      `db:"image" json:"image"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	Stops        []RouteStop `db:"-" json:"stops"`
}

type RouteStop struct {
	ID            uuid.UUID `db:"id" json:"id"`
	RouteID       uuid.UUID `db:"route_id" json:"route"`
	DayNumber     int       `db:"day_number" json:"day_number"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Image         string    `db:"image" json:"image"`
	DurationLabel string    `db:"duration_label" json:"duration_label"`
}

type RouteFields struct {
	Title        string
	Description  string
	DurationDays int
	BudgetRange  string
	Difficulty   string
	DistanceKM   int
	Image        string
	Stops        []RouteStopFields
}

type RouteStopFields struct {
	DayNumber     int
	Title         string
	Description   string
	Image         string
	DurationLabel string
}
