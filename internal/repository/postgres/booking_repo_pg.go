package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingSelect = `
	SELECT
		b.id,
		b.user_id,
		b.route_id,
		b.date::text AS date,
		b.people_count,
		b.total_price,
		b.status,
		b.created_at,
		rt.title AS route_title
	FROM booking b
	JOIN route rt ON rt.id = b.route_id
`

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	const query = `
		INSERT INTO booking (user_id, route_id, date, people_count, total_price, status)
		VALUES (:user_id, :route_id, :date, :people_count, :total_price, :status)
		RETURNING id
	`
	args := map[string]any{
		"user_id":      booking.UserID,
		"route_id":     booking.RouteID,
		"date":         booking.Date,
		"people_count": booking.PeopleCount,
		"total_price":  booking.TotalPrice,
		"status":       booking.Status,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	var id uuid.UUID
	if err := rows.Scan(&id); err != nil {
		return nil, err
	}
	rows.Close()
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, bookingSelect+` WHERE b.id = $1`, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.db.QueryxContext(ctx, bookingSelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.StructScan(&booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) error {
	placeholders := make([]string, len(from))
	args := []any{id, to}
	for i, status := range from {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, status)
	}

	query := fmt.Sprintf(`UPDATE booking SET status = $2 WHERE id = $1 AND status IN (%s)`, strings.Join(placeholders, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.BookingRepository = (*BookingRepository)(nil)
