package hub

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/events"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (h *Hub) handleEvent(ctx context.Context, event events.Event) {
	ctx, span := tracer.Start(ctx, "hub.handleEvent", trace.WithAttributes(
		attribute.String("event.channel", events.EventsChannel),
		attribute.String("event.type", event.Type),
	))
	defer span.End()

	if err := h.stats.Apply(event); err != nil {
		slog.ErrorContext(ctx, "Could not apply event to stats", "event.type", event.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not apply event to stats")
	}
}
