package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roomfinder/roomfinder-backend/internal/middleware"
	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/service"
	"github.com/roomfinder/roomfinder-backend/internal/validator"
)

// Booker is the reservation surface the HTTP layer needs.
type Booker interface {
	Book(ctx context.Context, userID int, req model.BookRequest) (*model.Booking, error)
	Cancel(ctx context.Context, userID, bookingID int) (*model.Booking, error)
	ListMine(ctx context.Context, userID, page, perPage int) ([]model.Booking, *response.Pagination, error)
}

// BookingHandler handles classroom reservations.
type BookingHandler struct {
	booker Booker
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(booker Booker) *BookingHandler {
	return &BookingHandler{booker: booker}
}

// bookingFailure maps service errors to an HTTP status and error code.
func bookingFailure(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrInvalidBookingTime):
		return http.StatusBadRequest, response.ErrValidation
	case errors.Is(err, service.ErrInvalidBookingWindow):
		return http.StatusUnprocessableEntity, response.ErrInvalidBookingWindow
	case errors.Is(err, service.ErrBookingInPast):
		return http.StatusUnprocessableEntity, response.ErrBookingInPast
	case errors.Is(err, service.ErrClassroomNotFound), errors.Is(err, service.ErrBookingNotFound):
		return http.StatusNotFound, response.ErrNotFound
	case errors.Is(err, service.ErrSlotNotAvailable):
		return http.StatusConflict, response.ErrSlotNotAvailable
	case errors.Is(err, service.ErrBookingConflict):
		return http.StatusConflict, response.ErrBookingConflict
	case errors.Is(err, service.ErrNotBookingOwner):
		return http.StatusForbidden, response.ErrForbidden
	case errors.Is(err, service.ErrBookingNotActive):
		return http.StatusConflict, response.ErrBookingNotActive
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}

// Book godoc
// POST /api/book
// Reserves a classroom for a whole-hour interval. The body is flat:
// {success, message, booking}.
func (h *BookingHandler) Book(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Reject(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.BookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": response.GetMessage(response.ErrValidation),
			"code":    response.ErrValidation,
			"fields":  fields,
		})
		return
	}

	booking, err := h.booker.Book(c.Request.Context(), claims.UserID, req)
	if err != nil {
		status, code := bookingFailure(err)
		if code == response.ErrInternal {
			_ = c.Error(err)
		}
		response.Reject(c, status, code)
		return
	}

	response.Done(c, http.StatusCreated, "Classroom "+booking.ClassroomNumber+" booked.", gin.H{
		"booking": booking,
	})
}

// ListBookings godoc
// GET /api/v1/bookings
// Lists the caller's bookings, newest first.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	bookings, pagination, err := h.booker.ListMine(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"bookings": bookings}, pagination)
}

// CancelBooking godoc
// POST /api/v1/bookings/:id/cancel
// Cancels one of the caller's active bookings.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	booking, err := h.booker.Cancel(c.Request.Context(), claims.UserID, id)
	if err != nil {
		status, code := bookingFailure(err)
		if code == response.ErrInternal {
			_ = c.Error(err)
		}
		response.Fail(c, status, code)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}
