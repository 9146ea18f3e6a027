package hub

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/events"
	"errors"
	"log/slog"
	"time"
)

const subscriberRetryDelay = time.Second

// runEventSubscriber keeps a subscription to the events channel alive until ctx is done.
func (h *Hub) runEventSubscriber(ctx context.Context) {
	slog.InfoContext(ctx, "Event subscriber started", "channel", events.EventsChannel)
	for {
		err := events.Subscribe(ctx, h.rdb, h.handleEvent)
		if ctx.Err() != nil {
			slog.InfoContext(ctx, "Event subscriber stopped")
			return
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.WarnContext(ctx, "Event subscription lost, retrying", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(subscriberRetryDelay):
		}
	}
}
