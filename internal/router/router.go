package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/handler"
	"github.com/roomfinder/roomfinder-backend/internal/middleware"
	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/validator"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Classroom *handler.ClassroomHandler
	Auth      *handler.AuthHandler
	Booking   *handler.BookingHandler
}

// Options carries the collaborators the route table needs besides handlers.
type Options struct {
	Auth         middleware.TokenVerifier
	LoginLimiter *middleware.RateLimiter
	// Registry receives the HTTP collectors and backs the metrics endpoint.
	// Nil disables metrics.
	Registry *prometheus.Registry
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(cfg *config.Config, handlers *Handlers, opts Options) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	// Query structs carry the block/weekday/timeslot tags.
	validator.Setup()
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	if cfg.MetricsEnabled && opts.Registry != nil {
		router.Use(middleware.NewHTTPMetrics(opts.Registry).Middleware())
		router.GET(cfg.MetricsPath, gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	// The metrics handler negotiates its own compression.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPaths(cfg.MetricsPath),
	}))

	router.GET("/health", handlers.Health.Health)

	loginLimit := func(c *gin.Context) { c.Next() }
	if opts.LoginLimiter != nil {
		loginLimit = opts.LoginLimiter.Middleware(response.AbortReject)
	}

	// ─── 1. Browser UI Group (flat bodies) ─────────────────────────────
	ui := router.Group("/api")
	{
		ui.GET("/classrooms", handlers.Classroom.ListClassrooms)
		ui.POST("/login", loginLimit, handlers.Auth.Login)
		ui.POST("/book", middleware.RequireUserJWTFlat(opts.Auth), handlers.Booking.Book)
	}

	// ─── 2. Reference Data (cacheable) ─────────────────────────────────
	v1 := router.Group("/api/v1")
	reference := v1.Group("")
	reference.Use(middleware.CacheControl(int((24 * time.Hour).Seconds())))
	{
		reference.GET("/timeslots", handlers.Classroom.ListTimeSlots)
		reference.GET("/blocks", handlers.Classroom.ListBlocks)
		reference.GET("/blocks/:block/floors", handlers.Classroom.ListFloors)
	}

	// ─── 3. Catalog Search ─────────────────────────────────────────────
	classrooms := v1.Group("/classrooms")
	{
		classrooms.GET("", handlers.Classroom.SearchClassrooms)
		classrooms.GET("/available-now", middleware.NoStore(), handlers.Classroom.AvailableNow)
	}

	// ─── 4. Authenticated User Group ───────────────────────────────────
	user := v1.Group("")
	user.Use(middleware.RequireUserJWT(opts.Auth), middleware.NoStore())
	{
		user.GET("/auth/me", handlers.Auth.Me)
		user.POST("/auth/logout", handlers.Auth.Logout)
		user.GET("/bookings", handlers.Booking.ListBookings)
		user.POST("/bookings/:id/cancel", handlers.Booking.CancelBooking)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}
