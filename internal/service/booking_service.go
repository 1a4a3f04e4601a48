package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingValidation = errors.New("booking validation failed")
	ErrBookingNotPayable = errors.New("booking cannot be paid")
	ErrPaymentFailed     = errors.New("payment failed")
)

// PaymentProcessor charges a booking. Implementations must be safe to call
// again for the same booking after a failure.
type PaymentProcessor interface {
	Charge(ctx context.Context, bookingID uuid.UUID, amount int) error
}

// DelayedProcessor simulates a gateway round trip. It respects ctx so a
// caller abandoning the request does not leave a goroutine sleeping.
type DelayedProcessor struct {
	Delay time.Duration
}

func (p *DelayedProcessor) Charge(ctx context.Context, _ uuid.UUID, _ int) error {
	select {
	case <-time.After(p.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type BookingService struct {
	bookings       ports.BookingRepository
	routes         ports.RouteRepository
	processor      PaymentProcessor
	pricePerPerson int
}

func NewBookingService(bookings ports.BookingRepository, routes ports.RouteRepository, processor PaymentProcessor, pricePerPerson int) *BookingService {
	return &BookingService{
		bookings:       bookings,
		routes:         routes,
		processor:      processor,
		pricePerPerson: pricePerPerson,
	}
}

func (s *BookingService) Create(ctx context.Context, userID, routeID uuid.UUID, date string, peopleCount int) (*domain.Booking, error) {
	// An omitted count means a solo traveler.
	if peopleCount == 0 {
		peopleCount = 1
	}
	if peopleCount < 1 {
		return nil, fmt.Errorf("%w: people_count must be at least 1", ErrBookingValidation)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBookingValidation)
	}
	if _, err := s.routes.FindByID(ctx, routeID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: unknown route", ErrBookingValidation)
		}
		return nil, err
	}

	booking := &domain.Booking{
		UserID:      userID,
		RouteID:     routeID,
		Date:        date,
		PeopleCount: peopleCount,
		TotalPrice:  peopleCount * s.pricePerPerson,
		Status:      domain.BookingStatusPending,
	}
	return s.bookings.Create(ctx, booking)
}

func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// Pay charges a booking and marks it paid. The call is idempotent: paying a
// booking that is already paid succeeds without charging again, and a
// booking stranded in payment_unconfirmed by an earlier crash can be paid
// again. Cancelled bookings are never payable.
func (s *BookingService) Pay(ctx context.Context, userID, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	// Bookings belong to their creator; do not leak existence to others.
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	switch booking.Status {
	case domain.BookingStatusPaid:
		return booking, nil
	case domain.BookingStatusCancelled:
		return nil, ErrBookingNotPayable
	}

	// Marking payment_unconfirmed before charging means a crash between the
	// charge and the final update leaves the booking in a state we allow to
	// be paid again, never silently unpaid-but-charged as "pending".
	err = s.bookings.UpdateStatus(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusPaymentUnconfirmed},
		domain.BookingStatusPaymentUnconfirmed)
	if err != nil {
		if isNotFound(err) {
			// Lost the race: someone else moved the booking. Re-read and
			// report the current state.
			return s.Pay(ctx, userID, bookingID)
		}
		return nil, err
	}

	if err := s.processor.Charge(ctx, bookingID, booking.TotalPrice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	err = s.bookings.UpdateStatus(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusPaymentUnconfirmed},
		domain.BookingStatusPaid)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}
