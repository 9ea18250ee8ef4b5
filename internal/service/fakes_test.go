package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/repository"
)

var errBoom = errors.New("boom")

type fakeClassroomStore struct {
	records []model.Classroom
	rooms   map[string]model.Room
	err     error
	calls   int
}

func (f *fakeClassroomStore) List(_ context.Context, q model.ClassroomQuery) ([]model.Classroom, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Classroom
	for _, r := range f.records {
		if q.Number != "" && r.Number != q.Number {
			continue
		}
		if q.Day != "" && r.Day != q.Day {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeClassroomStore) GetRoomByNumber(_ context.Context, number string) (*model.Room, error) {
	room, ok := f.rooms[number]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

type fakeCatalogCache struct {
	records  []model.Classroom
	hit      bool
	getErr   error
	setErr   error
	sets     int
	lastTTL  time.Duration
	invalids int
}

func (f *fakeCatalogCache) Get(context.Context) ([]model.Classroom, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.records, f.hit, nil
}

func (f *fakeCatalogCache) Set(_ context.Context, records []model.Classroom, ttl time.Duration) error {
	f.sets++
	f.lastTTL = ttl
	if f.setErr != nil {
		return f.setErr
	}
	f.records = records
	f.hit = true
	return nil
}

func (f *fakeCatalogCache) Invalidate(context.Context) error {
	f.invalids++
	f.records = nil
	f.hit = false
	return nil
}

type fakeUserStore struct {
	users map[int]*model.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]int
	ttls     map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]int{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSessionStore) Save(_ context.Context, jti string, userID int, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[jti] = userID
	f.ttls[jti] = ttl
	return nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, jti string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.sessions[jti]
	if !ok {
		return 0, repository.ErrSessionNotFound
	}
	return id, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, jti string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, jti)
	return nil
}

type fakeBookingStore struct {
	bookings map[int]*model.Booking
	nextID   int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[int]*model.Booking{}, nextID: 1}
}

func (f *fakeBookingStore) CreateIfFree(_ context.Context, b *model.Booking) error {
	for _, existing := range f.bookings {
		if existing.ClassroomID != b.ClassroomID || !existing.IsActive() {
			continue
		}
		if existing.StartTime.Before(b.EndTime) && existing.EndTime.After(b.StartTime) {
			return repository.ErrBookingOverlap
		}
	}
	b.ID = f.nextID
	f.nextID++
	b.Status = model.BookingActive
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID, limit, offset int) ([]model.Booking, int, error) {
	var mine []model.Booking
	for id := 1; id < f.nextID; id++ {
		if b, ok := f.bookings[id]; ok && b.UserID == userID {
			mine = append(mine, *b)
		}
	}
	total := len(mine)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return mine[offset:end], total, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id int, status model.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

type fakePublisher struct {
	events []model.BookingEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event model.BookingEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
