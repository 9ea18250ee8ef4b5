package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomfinder/roomfinder-backend/internal/availability"
	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// ClassroomStore reads the availability catalog from persistent storage.
type ClassroomStore interface {
	List(ctx context.Context, q model.ClassroomQuery) ([]model.Classroom, error)
}

// CatalogCache holds a cached copy of the full catalog.
type CatalogCache interface {
	Get(ctx context.Context) ([]model.Classroom, bool, error)
	Set(ctx context.Context, records []model.Classroom, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// CurrentAvailability is the result of an "available now" lookup.
// Slot is empty when the clock is outside teaching hours.
type CurrentAvailability struct {
	Slot       string                `json:"slot"`
	Day        string                `json:"day"`
	Criteria   availability.Criteria `json:"criteria"`
	Classrooms []model.Classroom     `json:"classrooms"`
}

// ClassroomService serves filtered views of the classroom catalog.
type ClassroomService struct {
	store    ClassroomStore
	cache    CatalogCache
	cacheTTL time.Duration
	loc      *time.Location
	log      zerolog.Logger
}

// NewClassroomService creates a new ClassroomService. A nil cache or a
// non-positive ttl disables caching.
func NewClassroomService(
	store ClassroomStore,
	cache CatalogCache,
	cacheTTL time.Duration,
	loc *time.Location,
	log zerolog.Logger,
) *ClassroomService {
	if loc == nil {
		loc = time.Local
	}
	return &ClassroomService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		loc:      loc,
		log:      log.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *ClassroomService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

// Catalog returns the full catalog snapshot. Cache failures are logged
// and the snapshot is read from the database instead.
func (s *ClassroomService) Catalog(ctx context.Context) ([]model.Classroom, error) {
	if s.cacheEnabled() {
		records, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("Catalog cache read failed")
		} else if ok {
			return records, nil
		}
	}

	records, err := s.store.List(ctx, model.ClassroomQuery{})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Classroom{}
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, records, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("Catalog cache write failed")
		}
	}
	return records, nil
}

// Search runs a fresh filter pass over the catalog.
func (s *ClassroomService) Search(ctx context.Context, c availability.Criteria) ([]model.Classroom, error) {
	records, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return availability.Filter(records, c), nil
}

// AvailableNow replaces the day and slot of c with the ones containing now
// (read in the campus time zone) and searches with the result.
func (s *ClassroomService) AvailableNow(ctx context.Context, c availability.Criteria, now time.Time) (*CurrentAvailability, error) {
	local := now.In(s.loc)
	slot, day := availability.ResolveCurrentSlot(local)
	applied := c.WithCurrent(local)

	records, err := s.Search(ctx, applied)
	if err != nil {
		return nil, err
	}
	return &CurrentAvailability{
		Slot:       slot,
		Day:        day,
		Criteria:   applied,
		Classrooms: records,
	}, nil
}

// InvalidateCatalog drops the cached snapshot.
func (s *ClassroomService) InvalidateCatalog(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}
