package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// BookingEventRepository persists the booking audit trail.
type BookingEventRepository struct {
	pool *pgxpool.Pool
}

// NewBookingEventRepository creates a new BookingEventRepository.
func NewBookingEventRepository(pool *pgxpool.Pool) *BookingEventRepository {
	return &BookingEventRepository{pool: pool}
}

// Insert appends one event.
func (r *BookingEventRepository) Insert(ctx context.Context, e *model.BookingEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO booking_events (booking_id, user_id, type, occurred_at)
		 VALUES ($1, $2, $3, $4)`,
		e.BookingID, e.UserID, e.Type, e.OccurredAt,
	)
	return err
}
