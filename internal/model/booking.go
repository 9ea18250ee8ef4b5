package model

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingTimeLayout is the format of the browser's datetime-local inputs.
const BookingTimeLayout = "2006-01-02T15:04"

// Booking reserves a classroom for a whole-hour interval.
type Booking struct {
	ID              int           `json:"id"`
	UserID          int           `json:"user_id"`
	ClassroomID     int           `json:"classroom_id"`
	ClassroomNumber string        `json:"classroom_number"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	Slots           []string      `json:"slots"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsActive reports whether the booking still holds its slots.
func (b *Booking) IsActive() bool {
	return b.Status == BookingActive
}

// BookRequest is the payload of the booking form.
type BookRequest struct {
	ClassroomID string `json:"classroomId" binding:"required,max=32"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
}

// BookingEventType names an entry of the booking audit trail.
type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is queued in Redis and persisted by the event worker.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  int              `json:"booking_id"`
	UserID     int              `json:"user_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}
