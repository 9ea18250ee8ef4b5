package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomfinder/roomfinder-backend/internal/availability"
	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// ClassroomRepository handles classroom and weekly availability data access.
type ClassroomRepository struct {
	pool *pgxpool.Pool
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

// List returns one record per (classroom, day) with at least one free slot,
// ordered by block, floor, number and weekday. Slots keep table order.
func (r *ClassroomRepository) List(ctx context.Context, q model.ClassroomQuery) ([]model.Classroom, error) {
	b := psql.Select(
		"c.id", "c.number", "c.location", "c.floor", "a.day",
		"array_agg(a.time_slot ORDER BY a.slot_index)",
	).
		From("classrooms c").
		Join("classroom_availability a ON a.classroom_id = c.id").
		GroupBy("c.id", "a.day", "a.day_index").
		OrderBy("c.location", "c.floor", "c.number", "a.day_index")

	if q.Number != "" {
		b = b.Where(sq.Eq{"c.number": q.Number})
	}
	if q.Location != "" {
		b = b.Where(sq.Eq{"c.location": q.Location})
	}
	if q.Floor != 0 {
		b = b.Where(sq.Eq{"c.floor": q.Floor})
	}
	if q.Day != "" {
		b = b.Where(sq.Eq{"a.day": q.Day})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list classrooms: %v", ErrBuildQuery, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := []model.Classroom{}
	for rows.Next() {
		var c model.Classroom
		if err := rows.Scan(&c.ID, &c.Number, &c.Location, &c.Floor, &c.Day, &c.AvailableTimes); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}

// GetRoomByNumber retrieves a classroom by its display number.
func (r *ClassroomRepository) GetRoomByNumber(ctx context.Context, number string) (*model.Room, error) {
	room := &model.Room{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, number, location, floor FROM classrooms WHERE number = $1`, number,
	).Scan(&room.ID, &room.Number, &room.Location, &room.Floor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

// UpsertRoom inserts a classroom or updates block and floor of an existing number.
func (r *ClassroomRepository) UpsertRoom(ctx context.Context, room *model.Room) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classrooms (number, location, floor)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (number) DO UPDATE
		 SET location = EXCLUDED.location, floor = EXCLUDED.floor, updated_at = NOW()
		 RETURNING id`,
		room.Number, room.Location, room.Floor,
	).Scan(&room.ID)
}

// SetAvailability replaces the free slots of a classroom on one weekday.
func (r *ClassroomRepository) SetAvailability(ctx context.Context, roomID int, day string, slots []string) error {
	weekday, ok := availability.ParseWeekday(day)
	if !ok {
		return fmt.Errorf("unknown weekday %q", day)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM classroom_availability WHERE classroom_id = $1 AND day = $2`,
			roomID, day,
		); err != nil {
			return err
		}

		if len(slots) == 0 {
			return nil
		}

		ins := psql.Insert("classroom_availability").
			Columns("classroom_id", "day", "day_index", "time_slot", "slot_index")
		rows := 0
		for _, s := range availability.Slots() {
			for _, want := range slots {
				if want == s.Label {
					ins = ins.Values(roomID, day, int(weekday), s.Label, s.StartHour)
					rows++
					break
				}
			}
		}
		if rows == 0 {
			return nil
		}

		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("%w: set availability: %v", ErrBuildQuery, err)
		}
		_, err = tx.Exec(ctx, query, args...)
		return err
	})
}
