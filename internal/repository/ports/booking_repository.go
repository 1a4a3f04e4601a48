package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	// UpdateStatus moves a booking between payment states. It reports
	// sql.ErrNoRows when the booking is not in one of the expected states,
	// which keeps the pay transition idempotent under retries.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) error
}
