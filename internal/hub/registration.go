package hub

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"ctchen222/tictactoe-minimax/internal/room"
	"ctchen222/tictactoe-minimax/internal/session"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// registerPlayer opens a room with a fresh session for the player.
func (h *Hub) registerPlayer(ctx context.Context, req *types.RegistrationRequest) {
	reqCtx := req.Ctx
	if reqCtx == nil {
		reqCtx = ctx
	}
	_, span := tracer.Start(reqCtx, "hub.registerPlayer", trace.WithAttributes(
		attribute.String("player.id", req.Player.ID),
	))
	defer span.End()

	roomID := uuid.New().String()
	span.SetAttributes(attribute.String("room.id", roomID))

	newRoom := room.NewRoom(roomID, req.Player, session.Options{
		Calculator:    bot.NewBotMoveCalculator(h.newRand()),
		Scheduler:     h.opts.Scheduler,
		OpponentDelay: h.opts.OpponentDelay,
		Publisher:     h.publisher,
	})
	h.rooms[roomID] = newRoom
	h.stats.SessionOpened()
	activeSessions.Add(ctx, 1)

	// Rooms outlive the registration request, so they hang off the hub's context.
	newRoom.Start(ctx, h.unregister)
	slog.InfoContext(ctx, "Room created", "room.id", roomID, "player.id", req.Player.ID)
}
