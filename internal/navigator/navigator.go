package navigator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/household-expenses/internal/core/events"
	"github.com/frahmantamala/household-expenses/internal/month"
)

// SyncFunc reloads everything shown for key. It runs on every transition.
type SyncFunc func(ctx context.Context, key month.Key) error

type Option func(*Navigator)

func WithBus(bus *events.EventBus) Option {
	return func(n *Navigator) {
		n.bus = bus
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// Navigator tracks the selected month, always normalized to its first day.
type Navigator struct {
	mu      sync.Mutex
	current time.Time
	sync    SyncFunc
	bus     *events.EventBus
	logger  *slog.Logger
}

func New(start time.Time, fn SyncFunc, opts ...Option) *Navigator {
	n := &Navigator{
		current: month.Start(start),
		sync:    fn,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetSync replaces the function run on each transition.
func (n *Navigator) SetSync(fn SyncFunc) {
	n.mu.Lock()
	n.sync = fn
	n.mu.Unlock()
}

func (n *Navigator) Current() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) Key() month.Key {
	return month.Of(n.Current())
}

func (n *Navigator) PrevKey() month.Key {
	return month.Of(month.Add(n.Current(), -1))
}

func (n *Navigator) Next(ctx context.Context) error {
	return n.move(ctx, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
}

func (n *Navigator) Prev(ctx context.Context) error {
	return n.move(ctx, func(t time.Time) time.Time { return t.AddDate(0, -1, 0) })
}

// Set jumps to the month containing date.
func (n *Navigator) Set(ctx context.Context, date time.Time) error {
	return n.move(ctx, func(time.Time) time.Time { return month.Start(date) })
}

// Reload runs the sync function for the current month without moving.
func (n *Navigator) Reload(ctx context.Context) error {
	return n.move(ctx, func(t time.Time) time.Time { return t })
}

// move keeps the new month even when the sync fails; the error is returned to the caller.
func (n *Navigator) move(ctx context.Context, step func(time.Time) time.Time) error {
	n.mu.Lock()
	prev := n.current
	n.current = step(n.current)
	key := month.Of(n.current)
	fn := n.sync
	n.mu.Unlock()

	if month.Of(prev) != key {
		n.logger.Debug("month changed", "from", month.Of(prev), "to", key)
		if n.bus != nil {
			if err := n.bus.Publish(ctx, events.NewMonthChangedEvent(key.String())); err != nil {
				n.logger.Warn("failed to publish month change", "error", err)
			}
		}
	}

	if fn == nil {
		return nil
	}
	return fn(ctx, key)
}
