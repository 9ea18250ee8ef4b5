package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// EventQueue appends booking events to the Redis list drained by the event worker.
type EventQueue struct {
	rdb *redis.Client
}

// NewEventQueue creates a new EventQueue.
func NewEventQueue(rdb *redis.Client) *EventQueue {
	return &EventQueue{rdb: rdb}
}

// Publish enqueues one event.
func (q *EventQueue) Publish(ctx context.Context, event model.BookingEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.rdb.RPush(ctx, config.WorkerKey.BookingEventsQueue, raw).Err()
}
