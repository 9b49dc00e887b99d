// Package events publishes job board domain events over Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"jobboard/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Channel carries every job board event.
const Channel = "jobboard:events"

// Event types.
const (
	JobCreated           = "job.created"
	JobDeleted           = "job.deleted"
	ApplicationCreated   = "application.created"
	ApplicationWithdrawn = "application.withdrawn"
)

// Event is the JSON payload published on Channel.
type Event struct {
	Type       string    `json:"type"`
	JobID      uint      `json:"job_id"`
	EmployeeID uint      `json:"employee_id,omitempty"`
	AccountID  uint      `json:"account_id,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher is implemented by Notifier; services depend on this interface.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Notifier publishes events into Redis. A nil Notifier or one without a client drops events.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends evt on Channel, stamping the time if unset.
func (n *Notifier) Publish(ctx context.Context, evt Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, Channel, payload).Err()
}

// Subscribe calls onEvent for each event until ctx is cancelled.
// The subscription is confirmed before Subscribe returns.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, Channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", Channel, err)
	}
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
					middleware.Logger.Warn("dropping malformed event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(evt)
				}()
			}
		}
	}()

	return nil
}

// PublishBestEffort logs instead of failing the caller when publishing fails.
func PublishBestEffort(ctx context.Context, p Publisher, evt Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		middleware.Logger.WarnContext(ctx, "event publish failed",
			slog.String("type", evt.Type), slog.String("error", err.Error()))
	}
}
