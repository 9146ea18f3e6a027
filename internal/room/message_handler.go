package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/validator"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	errMissingCell       = errors.New("move requires a cell")
	errMissingDifficulty = errors.New("select_difficulty requires a difficulty")
)

// HandleMessage decodes one client message and dispatches it to the session.
// Malformed messages are logged and answered with an error message.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	message, err := decodeMessage(rawMessage)
	if err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.Send(ctx, proto.NewError(err.Error()))
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeSelectDifficulty:
		difficulty, err := game.ParseDifficulty(message.Difficulty)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Unknown difficulty")
			r.Send(ctx, proto.NewError(err.Error()))
			return
		}
		if err := r.controller.SelectDifficulty(ctx, difficulty); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Could not select difficulty")
			r.Send(ctx, proto.NewError(err.Error()))
		}
	case proto.TypeMove:
		r.controller.Click(ctx, *message.Cell)
	case proto.TypeNewGame:
		r.controller.NewGame(ctx)
	case proto.TypeResetScores:
		r.controller.ResetScores(ctx)
	case proto.TypeMenu:
		r.controller.ReturnToMenu(ctx)
	}
}

func decodeMessage(rawMessage []byte) (*proto.ClientToServerMessage, error) {
	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		return nil, err
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		return nil, err
	}

	switch {
	case message.Type == proto.TypeMove && message.Cell == nil:
		return nil, errMissingCell
	case message.Type == proto.TypeSelectDifficulty && message.Difficulty == "":
		return nil, errMissingDifficulty
	}
	return &message, nil
}
