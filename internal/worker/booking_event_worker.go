package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/model"
)

const retryBackoff = 5 * time.Second

// errMalformedEvent marks payloads that can never be persisted.
var errMalformedEvent = errors.New("malformed booking event")

// EventStore persists booking events.
type EventStore interface {
	Insert(ctx context.Context, e *model.BookingEvent) error
}

// BookingEventWorker consumes booking_events_queue and writes the audit trail to PostgreSQL.
type BookingEventWorker struct {
	store   EventStore
	rdb     *redis.Client
	queue   string
	backoff time.Duration
	log     zerolog.Logger
}

// NewBookingEventWorker creates a new BookingEventWorker.
func NewBookingEventWorker(store EventStore, rdb *redis.Client, log zerolog.Logger) *BookingEventWorker {
	return &BookingEventWorker{
		store:   store,
		rdb:     rdb,
		queue:   config.WorkerKey.BookingEventsQueue,
		backoff: retryBackoff,
		log:     log.With().Str("component", "booking_event_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine; done is
// closed once the queue has been drained after ctx is cancelled.
func (w *BookingEventWorker) Start(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *BookingEventWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.handle(ctx, result[1]); err != nil {
		w.log.Error().Err(err).Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(context.Background(), w.queue, result[1])
		sleep(ctx, w.backoff)
	}
}

// handle persists one raw payload. Malformed payloads are logged and
// dropped; only store failures are returned.
func (w *BookingEventWorker) handle(ctx context.Context, raw string) error {
	event, err := decodeEvent(raw)
	if err != nil {
		w.log.Error().Err(err).Str("payload", raw).Msg("Dropping booking event")
		return nil
	}

	if err := w.store.Insert(ctx, event); err != nil {
		return fmt.Errorf("insert %s for booking %d: %w", event.Type, event.BookingID, err)
	}
	return nil
}

// drain processes all remaining items in the queue before shutdown.
func (w *BookingEventWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPop(ctx, w.queue).Result()
		if err != nil {
			break
		}

		if err := w.handle(ctx, raw); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, w.queue, raw)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

func decodeEvent(raw string) (*model.BookingEvent, error) {
	var event model.BookingEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	switch event.Type {
	case model.EventBookingCreated, model.EventBookingCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown type %q", errMalformedEvent, event.Type)
	}
	if event.BookingID < 1 {
		return nil, fmt.Errorf("%w: missing booking id", errMalformedEvent)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return &event, nil
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
