package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// BookingRepository handles booking data access.
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.user_id", "b.classroom_id", "c.number", "b.start_time", "b.end_time",
	"b.slots", "b.status", "b.created_at", "b.updated_at",
}

// CreateIfFree inserts b unless an active booking of the same classroom
// overlaps [StartTime, EndTime). The classroom row is locked for the
// duration of the check so concurrent requests serialize per room.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *model.Booking) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var locked int
		err := tx.QueryRow(ctx,
			`SELECT id FROM classrooms WHERE id = $1 FOR UPDATE`, b.ClassroomID,
		).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		var overlaps bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM bookings
				WHERE classroom_id = $1 AND status = $2
				  AND start_time < $4 AND end_time > $3
			)`,
			b.ClassroomID, model.BookingActive, b.StartTime, b.EndTime,
		).Scan(&overlaps)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrBookingOverlap
		}

		return tx.QueryRow(ctx,
			`INSERT INTO bookings (user_id, classroom_id, start_time, end_time, slots, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, status, created_at, updated_at`,
			b.UserID, b.ClassroomID, b.StartTime, b.EndTime, b.Slots, model.BookingActive,
		).Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	})
}

// GetByID retrieves a booking with its classroom number.
func (r *BookingRepository) GetByID(ctx context.Context, id int) (*model.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings b").
		Join("classrooms c ON c.id = b.classroom_id").
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get booking: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser returns a page of the user's bookings, newest first, and the total count.
func (r *BookingRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]model.Booking, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := psql.Select(bookingColumns...).
		From("bookings b").
		Join("classrooms c ON c.id = b.classroom_id").
		Where(sq.Eq{"b.user_id": userID}).
		OrderBy("b.start_time DESC", "b.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list bookings: %v", ErrBuildQuery, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, total, rows.Err()
}

// UpdateStatus sets the status of a booking.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status model.BookingStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	b := &model.Booking{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.ClassroomID, &b.ClassroomNumber, &b.StartTime, &b.EndTime,
		&b.Slots, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
