// Package notifications publishes domain events to Redis pub/sub channels.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"waypost/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Broadcast channel for feed-level events.
const BroadcastChannel = "events:broadcast"

// Event types published after successful commits.
const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
)

// Event is the envelope published on a channel.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Notifier publishes events into Redis channels. A Notifier with a nil
// client is a no-op, so the server runs fine without Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishBroadcast sends an event to the broadcast channel.
func (n *Notifier) PublishBroadcast(ctx context.Context, eventType string, payload interface{}) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	evt := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if err := n.rdb.Publish(ctx, BroadcastChannel, data).Err(); err != nil {
		return err
	}
	observability.EventsPublished.WithLabelValues(eventType).Inc()
	return nil
}

// Subscribe subscribes to the broadcast channel and invokes onEvent for each
// decoded event until ctx is cancelled. Undecodable messages are skipped.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	sub := n.rdb.Subscribe(ctx, BroadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var evt Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					continue
				}
				onEvent(evt)
			}
		}
	}()

	return nil
}
