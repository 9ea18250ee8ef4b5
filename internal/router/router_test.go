package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomfinder/roomfinder-backend/internal/availability"
	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/handler"
	"github.com/roomfinder/roomfinder-backend/internal/middleware"
	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/service"
)

type emptyCatalog struct{}

func (emptyCatalog) Search(context.Context, availability.Criteria) ([]model.Classroom, error) {
	return []model.Classroom{}, nil
}

func (emptyCatalog) AvailableNow(_ context.Context, c availability.Criteria, _ time.Time) (*service.CurrentAvailability, error) {
	return &service.CurrentAvailability{Criteria: c, Classrooms: []model.Classroom{}}, nil
}

type noAuth struct{}

func (noAuth) Login(context.Context, string, string) (string, *model.User, error) {
	return "", nil, service.ErrInvalidCredentials
}
func (noAuth) Logout(context.Context, string) error { return nil }
func (noAuth) CurrentUser(context.Context, int) (*model.User, error) {
	return nil, service.ErrUserNotFound
}
func (noAuth) ValidateToken(string) (*service.Claims, error) { return nil, errors.New("no tokens") }
func (noAuth) ValidateSession(context.Context, *service.Claims) error {
	return service.ErrSessionInvalid
}

type noBookings struct{}

func (noBookings) Book(context.Context, int, model.BookRequest) (*model.Booking, error) {
	return nil, service.ErrClassroomNotFound
}
func (noBookings) Cancel(context.Context, int, int) (*model.Booking, error) {
	return nil, service.ErrBookingNotFound
}
func (noBookings) ListMine(context.Context, int, int, int) ([]model.Booking, *response.Pagination, error) {
	return []model.Booking{}, response.NewPagination(1, 10, 0), nil
}

func testRouter(loginPerMinute int) *gin.Engine {
	cfg := &config.Config{GinMode: gin.TestMode, MetricsEnabled: true, MetricsPath: "/metrics"}
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(nil, zerolog.Nop()),
		Classroom: handler.NewClassroomHandler(emptyCatalog{}),
		Auth:      handler.NewAuthHandler(noAuth{}),
		Booking:   handler.NewBookingHandler(noBookings{}),
	}
	return SetupRouter(cfg, handlers, Options{
		Auth:         noAuth{},
		LoginLimiter: middleware.NewRateLimiter(loginPerMinute, time.Minute),
		Registry:     prometheus.NewRegistry(),
	})
}

func get(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	r := testRouter(30)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/classrooms", http.StatusOK},
		{http.MethodGet, "/api/v1/classrooms", http.StatusOK},
		{http.MethodGet, "/api/v1/classrooms/available-now", http.StatusOK},
		{http.MethodGet, "/api/v1/timeslots", http.StatusOK},
		{http.MethodGet, "/api/v1/blocks", http.StatusOK},
		{http.MethodGet, "/api/v1/blocks/CB/floors", http.StatusOK},
		{http.MethodPost, "/api/book", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/auth/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/logout", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/bookings", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/bookings/1/cancel", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.status, get(r, tt.method, tt.path).Code)
		})
	}
}

func TestSearchValidatesWithoutExplicitSetup(t *testing.T) {
	r := testRouter(30)

	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/api/v1/classrooms?block=CB&day=Friday").Code)
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/api/v1/classrooms/available-now?block=AB1").Code)

	w := get(r, http.MethodGet, "/api/v1/classrooms?block=ZZ")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"VALIDATION_ERROR"`)
}

func TestReferenceDataIsCacheable(t *testing.T) {
	r := testRouter(30)

	assert.Equal(t, "public, max-age=86400", get(r, http.MethodGet, "/api/v1/timeslots").Header().Get("Cache-Control"))
	assert.Equal(t, "no-store", get(r, http.MethodGet, "/api/v1/classrooms/available-now").Header().Get("Cache-Control"))
}

func TestBookUsesFlatBody(t *testing.T) {
	w := get(testRouter(30), http.MethodPost, "/api/book")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestLoginIsRateLimited(t *testing.T) {
	r := testRouter(1)

	assert.Equal(t, http.StatusBadRequest, get(r, http.MethodPost, "/api/login").Code)
	w := get(r, http.MethodPost, "/api/login")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(30)
	get(r, http.MethodGet, "/api/v1/blocks")

	w := get(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `roomfinder_http_requests_total{method="GET",route="/api/v1/blocks",status="200"} 1`)
}
