package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/service"
)

type fakeBooker struct {
	bookErr   error
	cancelErr error
	lastReq   model.BookRequest
	lastUser  int
	page      int
	perPage   int
}

func (f *fakeBooker) Book(_ context.Context, userID int, req model.BookRequest) (*model.Booking, error) {
	f.lastUser, f.lastReq = userID, req
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &model.Booking{
		ID:              11,
		UserID:          userID,
		ClassroomID:     1,
		ClassroomNumber: req.ClassroomID,
		StartTime:       time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 10, 23, 10, 0, 0, 0, time.UTC),
		Slots:           []string{"9:00 AM - 10:00 AM"},
		Status:          model.BookingActive,
	}, nil
}

func (f *fakeBooker) Cancel(_ context.Context, userID, bookingID int) (*model.Booking, error) {
	f.lastUser = userID
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &model.Booking{ID: bookingID, UserID: userID, Status: model.BookingCancelled}, nil
}

func (f *fakeBooker) ListMine(_ context.Context, userID, page, perPage int) ([]model.Booking, *response.Pagination, error) {
	f.lastUser, f.page, f.perPage = userID, page, perPage
	return []model.Booking{{ID: 1, UserID: userID}}, response.NewPagination(page, perPage, 1), nil
}

func bookingRouter(f *fakeBooker) *gin.Engine {
	h := NewBookingHandler(f)
	r := gin.New()
	r.POST("/api/book", asUser(7), h.Book)
	r.GET("/api/v1/bookings", asUser(7), h.ListBookings)
	r.POST("/api/v1/bookings/:id/cancel", asUser(7), h.CancelBooking)
	return r
}

var validBooking = gin.H{"classroomId": "AB1-101", "startTime": "2026-10-23T09:00", "endTime": "2026-10-23T10:00"}

func TestBook(t *testing.T) {
	f := &fakeBooker{}
	w := perform(bookingRouter(f), http.MethodPost, "/api/book", validBooking)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeFlat(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Classroom AB1-101 booked.", body["message"])
	assert.Contains(t, body, "booking")

	assert.Equal(t, 7, f.lastUser)
	assert.Equal(t, "2026-10-23T09:00", f.lastReq.StartTime)
}

func TestBook_MissingFields(t *testing.T) {
	w := perform(bookingRouter(&fakeBooker{}), http.MethodPost, "/api/book", gin.H{"classroomId": "AB1-101"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeFlat(t, w)
	assert.Equal(t, false, body["success"])
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "startTime")
	assert.Contains(t, fields, "endTime")
}

func TestBook_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   response.ErrCode
	}{
		{fmt.Errorf("%w: start", service.ErrInvalidBookingTime), http.StatusBadRequest, response.ErrValidation},
		{service.ErrInvalidBookingWindow, http.StatusUnprocessableEntity, response.ErrInvalidBookingWindow},
		{service.ErrBookingInPast, http.StatusUnprocessableEntity, response.ErrBookingInPast},
		{service.ErrClassroomNotFound, http.StatusNotFound, response.ErrNotFound},
		{service.ErrSlotNotAvailable, http.StatusConflict, response.ErrSlotNotAvailable},
		{service.ErrBookingConflict, http.StatusConflict, response.ErrBookingConflict},
		{assert.AnError, http.StatusInternalServerError, response.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			w := perform(bookingRouter(&fakeBooker{bookErr: tt.err}), http.MethodPost, "/api/book", validBooking)
			require.Equal(t, tt.status, w.Code)
			body := decodeFlat(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, string(tt.code), body["code"])
			assert.Equal(t, response.GetMessage(tt.code), body["message"])
		})
	}
}

func TestListBookings(t *testing.T) {
	f := &fakeBooker{}
	w := perform(bookingRouter(f), http.MethodGet, "/api/v1/bookings?page=2&per_page=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, f.page)
	assert.Equal(t, 5, f.perPage)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalItems)
}

func TestCancelBooking(t *testing.T) {
	w := perform(bookingRouter(&fakeBooker{}), http.MethodPost, "/api/v1/bookings/11/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"status":"cancelled"`)

	tests := []struct {
		path   string
		err    error
		status int
		code   response.ErrCode
	}{
		{"/api/v1/bookings/abc/cancel", nil, http.StatusBadRequest, response.ErrInvalidID},
		{"/api/v1/bookings/11/cancel", service.ErrBookingNotFound, http.StatusNotFound, response.ErrNotFound},
		{"/api/v1/bookings/11/cancel", service.ErrNotBookingOwner, http.StatusForbidden, response.ErrForbidden},
		{"/api/v1/bookings/11/cancel", service.ErrBookingNotActive, http.StatusConflict, response.ErrBookingNotActive},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			w := perform(bookingRouter(&fakeBooker{cancelErr: tt.err}), http.MethodPost, tt.path, nil)
			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeEnvelope(t, w).Error.Code)
		})
	}
}
