package bot

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// mediumRandomChance is the probability that a medium bot plays a random move.
const mediumRandomChance = 0.5

var ErrNoAvailableMoves = errors.New("no available moves")

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")

	searchNodes metric.Int64Histogram
)

func init() {
	var err error
	searchNodes, err = meter.Int64Histogram("tictactoe.search.nodes",
		metric.WithDescription("Positions visited by one optimal move search"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		otel.Handle(err)
	}
}

// Rand is the source of randomness for the easy and medium tiers.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// BotMoveCalculator picks the opponent's move for a difficulty tier.
// It is safe for concurrent use.
type BotMoveCalculator struct {
	mu  sync.Mutex
	rng Rand
}

// NewBotMoveCalculator creates a calculator drawing random numbers from rng.
func NewBotMoveCalculator(rng Rand) *BotMoveCalculator {
	return &BotMoveCalculator{rng: rng}
}

// CalculateNextMove determines the bot's next move (as O) based on the specified difficulty.
// It fails with ErrNoAvailableMoves when the board has no empty cell.
func (c *BotMoveCalculator) CalculateNextMove(ctx context.Context, board game.Board, difficulty game.Difficulty) (int, error) {
	_, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("game.difficulty", string(difficulty)),
		attribute.Int("board.empty", len(board.EmptyCells())),
	))
	defer span.End()

	var (
		move int
		err  error
	)
	switch difficulty {
	case game.Easy:
		move, err = c.easyMove(board)
	case game.Medium:
		move, err = c.mediumMove(ctx, board)
	case game.Hard:
		move, err = hardMove(ctx, board)
	default:
		err = fmt.Errorf("%q: %w", difficulty, game.ErrUnknownDifficulty)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not calculate move")
		return -1, err
	}

	span.SetAttributes(attribute.Int("move.cell", move))
	return move, nil
}

// easyMove makes a completely random move.
func (c *BotMoveCalculator) easyMove(board game.Board) (int, error) {
	availableMoves := board.EmptyCells()
	if len(availableMoves) == 0 {
		return -1, ErrNoAvailableMoves
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return availableMoves[c.rng.IntN(len(availableMoves))], nil
}

// mediumMove flips a coin on every call between a random and an optimal move.
func (c *BotMoveCalculator) mediumMove(ctx context.Context, board game.Board) (int, error) {
	c.mu.Lock()
	roll := c.rng.Float64()
	c.mu.Unlock()

	if roll < mediumRandomChance {
		return c.easyMove(board)
	}
	return hardMove(ctx, board)
}

// hardMove plays the minimax-optimal move.
func hardMove(ctx context.Context, board game.Board) (int, error) {
	result, err := BestMove(board)
	if err != nil {
		return -1, err
	}

	searchNodes.Record(ctx, int64(result.Nodes))
	return result.Move, nil
}
