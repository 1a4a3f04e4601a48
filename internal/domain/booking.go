package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusPaymentUnconfirmed marks a booking whose payment attempt
	// started but was never confirmed. Paying again from this state is safe.
	BookingStatusPaymentUnconfirmed BookingStatus = "payment_unconfirmed"
	BookingStatusPaid               BookingStatus = "paid"
	BookingStatusCancelled          BookingStatus = "cancelled"
)

type Booking struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	UserID      uuid.UUID     `db:"user_id" json:"-"`
	RouteID     uuid.UUID     `db:"route_id" json:"route"`
	Date        string        `db:"date" json:"date"`
	PeopleCount int           `db:"people_count" json:"people_count"`
	TotalPrice  int           `db:"total_price" json:"total_price"`
	Status      BookingStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`

	RouteTitle string `db:"route_title" json:"route_title"`
}
