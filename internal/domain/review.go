package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

type Review struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	AuthorID        uuid.UUID    `db:"author_id" json:"-"`
	AttractionID    uuid.UUID    `db:"attraction_id" json:"attraction"`
	Rating          int          `db:"rating" json:"rating"`
	Text            string       `db:"text" json:"text"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	Status          ReviewStatus `db:"status" json:"status"`
	RejectionReason *string      `db:"rejection_reason" json:"rejection_reason,omitempty"`

	AuthorName     string `db:"author_name" json:"author_name"`
	AttractionName string `db:"attraction_name" json:"attraction_name"`
}

// ReviewListFilter narrows review listings. Visibility (approved-only vs
// approved-or-own vs everything) is decided by the service from the viewer,
// not supplied by the caller.
type ReviewListFilter struct {
	AttractionID *uuid.UUID
	Status       *ReviewStatus
	Limit        int
	Offset       int
}

// ReviewVisibility captures who is asking for the list.
type ReviewVisibility struct {
	ViewerID *uuid.UUID
	IsStaff  bool
}
