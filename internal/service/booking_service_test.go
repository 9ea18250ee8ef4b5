package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// Monday 2026-10-19, 07:00 UTC.
var bookingNow = time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)

type bookingFixture struct {
	svc      *BookingService
	bookings *fakeBookingStore
	events   *fakePublisher
}

func newBookingFixture() *bookingFixture {
	rooms := &fakeClassroomStore{
		rooms: map[string]model.Room{
			"AB1-101": {ID: 1, Number: "AB1-101", Location: "AB1", Floor: 1},
			"CB-702":  {ID: 3, Number: "CB-702", Location: "CB", Floor: 7},
		},
		records: []model.Classroom{
			{ID: 1, Number: "AB1-101", Location: "AB1", Floor: 1, Day: "Monday", AvailableTimes: []string{
				"8:00 AM - 9:00 AM", "9:00 AM - 10:00 AM", "10:00 AM - 11:00 AM",
			}},
			{ID: 1, Number: "AB1-101", Location: "AB1", Floor: 1, Day: "Tuesday", AvailableTimes: []string{
				"1:00 PM - 2:00 PM",
			}},
		},
	}
	f := &bookingFixture{bookings: newFakeBookingStore(), events: &fakePublisher{}}
	f.svc = NewBookingService(rooms, f.bookings, f.events, time.UTC, zerolog.Nop())
	f.svc.now = func() time.Time { return bookingNow }
	return f
}

func bookReq(room, start, end string) model.BookRequest {
	return model.BookRequest{ClassroomID: room, StartTime: start, EndTime: end}
}

func TestBookingService_Book(t *testing.T) {
	f := newBookingFixture()

	b, err := f.svc.Book(context.Background(), 7, bookReq("AB1-101", "2026-10-19T08:00", "2026-10-19T10:00"))
	require.NoError(t, err)

	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 7, b.UserID)
	assert.Equal(t, 1, b.ClassroomID)
	assert.Equal(t, "AB1-101", b.ClassroomNumber)
	assert.Equal(t, []string{"8:00 AM - 9:00 AM", "9:00 AM - 10:00 AM"}, b.Slots)
	assert.Equal(t, model.BookingActive, b.Status)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, model.EventBookingCreated, f.events.events[0].Type)
	assert.Equal(t, 1, f.events.events[0].BookingID)
}

func TestBookingService_BookRejections(t *testing.T) {
	tests := []struct {
		name string
		req  model.BookRequest
		want error
	}{
		{"malformed start", bookReq("AB1-101", "19/10/2026 08:00", "2026-10-19T09:00"), ErrInvalidBookingTime},
		{"malformed end", bookReq("AB1-101", "2026-10-19T08:00", "later"), ErrInvalidBookingTime},
		{"not on the hour", bookReq("AB1-101", "2026-10-19T08:30", "2026-10-19T09:30"), ErrInvalidBookingWindow},
		{"end before start", bookReq("AB1-101", "2026-10-19T10:00", "2026-10-19T09:00"), ErrInvalidBookingWindow},
		{"before first slot", bookReq("AB1-101", "2026-10-20T07:00", "2026-10-20T09:00"), ErrInvalidBookingWindow},
		{"spans two days", bookReq("AB1-101", "2026-10-19T19:00", "2026-10-20T09:00"), ErrInvalidBookingWindow},
		{"in the past", bookReq("AB1-101", "2026-10-12T08:00", "2026-10-12T09:00"), ErrBookingInPast},
		{"unknown room", bookReq("ZZ-1", "2026-10-19T08:00", "2026-10-19T09:00"), ErrClassroomNotFound},
		{"slot not free", bookReq("AB1-101", "2026-10-19T10:00", "2026-10-19T12:00"), ErrSlotNotAvailable},
		{"no record that day", bookReq("CB-702", "2026-10-19T08:00", "2026-10-19T09:00"), ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			_, err := f.svc.Book(context.Background(), 7, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.events.events)
		})
	}
}

func TestBookingService_BookConflict(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	_, err := f.svc.Book(ctx, 7, bookReq("AB1-101", "2026-10-19T08:00", "2026-10-19T10:00"))
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, 8, bookReq("AB1-101", "2026-10-19T09:00", "2026-10-19T10:00"))
	assert.ErrorIs(t, err, ErrBookingConflict)

	// Adjacent intervals do not overlap.
	_, err = f.svc.Book(ctx, 8, bookReq("AB1-101", "2026-10-19T10:00", "2026-10-19T11:00"))
	assert.NoError(t, err)
}

func TestBookingService_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newBookingFixture()
	f.events.err = errBoom

	b, err := f.svc.Book(context.Background(), 7, bookReq("AB1-101", "2026-10-20T13:00", "2026-10-20T14:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1:00 PM - 2:00 PM"}, b.Slots)
}

func TestBookingService_Cancel(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	b, err := f.svc.Book(ctx, 7, bookReq("AB1-101", "2026-10-19T08:00", "2026-10-19T09:00"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, 8, b.ID)
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	_, err = f.svc.Cancel(ctx, 7, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	cancelled, err := f.svc.Cancel(ctx, 7, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)
	require.Len(t, f.events.events, 2)
	assert.Equal(t, model.EventBookingCancelled, f.events.events[1].Type)

	_, err = f.svc.Cancel(ctx, 7, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotActive)

	// The freed interval can be booked again.
	_, err = f.svc.Book(ctx, 8, bookReq("AB1-101", "2026-10-19T08:00", "2026-10-19T09:00"))
	assert.NoError(t, err)
}

func TestBookingService_ListMine(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	windows := [][2]string{
		{"2026-10-19T08:00", "2026-10-19T09:00"},
		{"2026-10-19T09:00", "2026-10-19T10:00"},
		{"2026-10-19T10:00", "2026-10-19T11:00"},
	}
	for _, w := range windows {
		_, err := f.svc.Book(ctx, 7, bookReq("AB1-101", w[0], w[1]))
		require.NoError(t, err)
	}

	list, page, err := f.svc.ListMine(ctx, 7, 1, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	list, page, err = f.svc.ListMine(ctx, 7, 0, 500)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PerPage)

	list, _, err = f.svc.ListMine(ctx, 8, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
