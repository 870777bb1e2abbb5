package cmd

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/household-expenses/internal/core/events"
)

var traceEvents bool

var clientEventTypes = []string{
	events.EventTypeSessionStarted,
	events.EventTypeSessionEnded,
	events.EventTypeMonthChanged,
	events.EventTypeDataSynced,
}

// traceBus logs every client event at debug level.
func traceBus(bus *events.EventBus, logger *slog.Logger) {
	for _, eventType := range clientEventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			logger.Debug("event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		})
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&traceEvents, "trace-events", false, "log session and sync events (needs debug logging)")
}
