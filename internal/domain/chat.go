package domain

import "github.com/google/uuid"

type RecommendationType string

const (
	RecommendationAttraction RecommendationType = "attraction"
	RecommendationRoute      RecommendationType = "route"
)

// Recommendation is a card attached to a planner reply, pointing at a
// catalog entity the user can navigate to.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
}

type PlannerAnswer struct {
	Reply           string           `json:"reply"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
