package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomfinder/roomfinder-backend/internal/availability"
	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/repository"
	"github.com/roomfinder/roomfinder-backend/internal/response"
)

// Booking errors.
var (
	ErrInvalidBookingTime   = errors.New("booking time is malformed")
	ErrInvalidBookingWindow = errors.New("booking window is not a whole-hour teaching interval")
	ErrBookingInPast        = errors.New("booking starts in the past")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrSlotNotAvailable     = errors.New("classroom is not free for the requested slots")
	ErrBookingConflict      = errors.New("classroom is already booked for the requested time")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotBookingOwner      = errors.New("booking belongs to another user")
	ErrBookingNotActive     = errors.New("booking is not active")
)

// RoomStore resolves rooms and their weekly availability.
type RoomStore interface {
	GetRoomByNumber(ctx context.Context, number string) (*model.Room, error)
	List(ctx context.Context, q model.ClassroomQuery) ([]model.Classroom, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	CreateIfFree(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int) (*model.Booking, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]model.Booking, int, error)
	UpdateStatus(ctx context.Context, id int, status model.BookingStatus) error
}

// EventPublisher hands booking events to the background worker.
type EventPublisher interface {
	Publish(ctx context.Context, event model.BookingEvent) error
}

// BookingService handles classroom reservations.
type BookingService struct {
	rooms    RoomStore
	bookings BookingStore
	events   EventPublisher
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	rooms RoomStore,
	bookings BookingStore,
	events EventPublisher,
	loc *time.Location,
	log zerolog.Logger,
) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{
		rooms:    rooms,
		bookings: bookings,
		events:   events,
		loc:      loc,
		now:      time.Now,
		log:      log.With().Str("component", "booking_service").Logger(),
	}
}

// Book reserves the classroom numbered req.ClassroomID for the requested
// interval on behalf of userID.
func (s *BookingService) Book(ctx context.Context, userID int, req model.BookRequest) (*model.Booking, error) {
	start, err := time.ParseInLocation(model.BookingTimeLayout, req.StartTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidBookingTime, err)
	}
	end, err := time.ParseInLocation(model.BookingTimeLayout, req.EndTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidBookingTime, err)
	}

	slots, err := availability.SlotsCovering(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBookingWindow, err)
	}

	if start.Before(s.now()) {
		return nil, ErrBookingInPast
	}

	room, err := s.rooms.GetRoomByNumber(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("get classroom: %w", err)
	}

	day := availability.WeekdayName(start.Weekday())
	records, err := s.rooms.List(ctx, model.ClassroomQuery{Number: room.Number, Day: day})
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	if !coversAll(records, slots) {
		return nil, ErrSlotNotAvailable
	}

	booking := &model.Booking{
		UserID:          userID,
		ClassroomID:     room.ID,
		ClassroomNumber: room.Number,
		StartTime:       start,
		EndTime:         end,
		Slots:           slots,
	}
	if err := s.bookings.CreateIfFree(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			return nil, ErrBookingConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.publish(ctx, model.EventBookingCreated, booking)
	s.log.Info().
		Int("booking_id", booking.ID).
		Int("user_id", userID).
		Str("classroom", room.Number).
		Strs("slots", slots).
		Msg("Classroom booked")

	return booking, nil
}

// Cancel releases an active booking owned by userID.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if !booking.IsActive() {
		return nil, ErrBookingNotActive
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, model.BookingCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	booking.Status = model.BookingCancelled

	s.publish(ctx, model.EventBookingCancelled, booking)
	return booking, nil
}

// ListMine returns the caller's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, userID, page, perPage int) ([]model.Booking, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	bookings, total, err := s.bookings.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}

	return bookings, response.NewPagination(page, perPage, total), nil
}

// publish enqueues an audit event. The booking itself is already
// committed, so failures are only logged.
func (s *BookingService) publish(ctx context.Context, typ model.BookingEventType, b *model.Booking) {
	if s.events == nil {
		return
	}
	event := model.BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		UserID:     b.UserID,
		OccurredAt: s.now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Error().Err(err).
			Str("type", string(typ)).
			Int("booking_id", b.ID).
			Msg("Failed to enqueue booking event")
	}
}

func coversAll(records []model.Classroom, slots []string) bool {
	if len(records) == 0 {
		return false
	}
	for _, slot := range slots {
		if !records[0].HasSlot(slot) {
			return false
		}
	}
	return true
}
