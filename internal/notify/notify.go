// Package notify announces phase advances over Redis pub/sub so an external
// gamemaster loop can wake up and start collecting the next round of orders.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Notifier wraps a Redis client for phase-advance pub/sub.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier from a Redis connection URL.
func NewNotifier(redisURL string) (*Notifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Notifier{rdb: rdb}, nil
}

// NewNotifierFromClient wraps an existing redis.Client, for use in tests.
func NewNotifierFromClient(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Close closes the underlying Redis connection.
func (n *Notifier) Close() error {
	return n.rdb.Close()
}

func phaseChannel(gameID string) string { return "game:" + gameID + ":phase" }

// PhaseAdvanced is published whenever a phase finishes resolving.
type PhaseAdvanced struct {
	GameID     string `json:"game_id"`
	Year       int    `json:"year"`
	Season     string `json:"season"`
	NeedsOrder bool   `json:"needs_order"` // false when the game has ended
}

// PublishPhaseAdvanced announces that gameID has moved to a new phase.
func (n *Notifier) PublishPhaseAdvanced(ctx context.Context, event PhaseAdvanced) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal phase event: %w", err)
	}
	if err := n.rdb.Publish(ctx, phaseChannel(event.GameID), data).Err(); err != nil {
		return fmt.Errorf("publish phase event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of PhaseAdvanced events for gameID. The
// returned function must be called to release the subscription.
func (n *Notifier) Subscribe(ctx context.Context, gameID string) (<-chan PhaseAdvanced, func() error) {
	sub := n.rdb.Subscribe(ctx, phaseChannel(gameID))
	out := make(chan PhaseAdvanced)

	go func() {
		defer close(out)
		ch := sub.Channel()
		for msg := range ch {
			var event PhaseAdvanced
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, sub.Close
}
