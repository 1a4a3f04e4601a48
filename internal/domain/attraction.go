package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttractionStatus string

const (
	AttractionStatusActive AttractionStatus = "active"
	AttractionStatusDraft  AttractionStatus = "draft"
)

func (s AttractionStatus) Valid() bool {
	return s == AttractionStatusActive || s == AttractionStatusDraft
}

type Attraction struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	RegionID      uuid.UUID        `db:"region_id" json:"region"`
	CategoryID    uuid.UUID        `db:"category_id" json:"category"`
	Description   string           `db:"description" json:"description"`
	Image         string           `db:"image" json:"image"`
	Latitude      *float64         `db:"latitude" json:"latitude,omitempty"`
	Longitude     *float64         `db:"longitude" json:"longitude,omitempty"`
	VisitorsCount int              `db:"visitors_count" json:"visitors_count"`
	Status        AttractionStatus `db:"status" json:"status"`
	EntranceFee   string           `db:"entrance_fee" json:"entrance_fee"`
	BestTime      string           `db:"best_time" json:"best_time"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`

	// Denormalized for serialization, populated by repository joins.
	RegionName   string  `db:"region_name" json:"region_name"`
	CategoryName string  `db:"category_name" json:"category_name"`
	Rating       float64 `db:"rating" json:"rating"`
	ReviewsCount int     `db:"reviews_count" json:"reviews_count"`
}

type AttractionSort string

const (
	AttractionSortNewest       AttractionSort = "newest"
	AttractionSortName         AttractionSort = "name"
	AttractionSortNameDesc     AttractionSort = "-name"
	AttractionSortVisitors     AttractionSort = "visitors_count"
	AttractionSortVisitorsDesc AttractionSort = "-visitors_count"
)

type AttractionListFilter struct {
	Region        string
	Category      string
	Status        *AttractionStatus
	Search        string
	Sort          AttractionSort
	IncludeDrafts bool
	Limit         int
	Offset        int
}

type AttractionFields struct {
	Name        string
	RegionID    uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Image       string
	Latitude    *float64
	Longitude   *float64
	Status      AttractionStatus
	EntranceFee string
	BestTime    string
}
