package session

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/events"
	"ctchen222/tictactoe-minimax/internal/game"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultOpponentDelay = 600 * time.Millisecond

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")

	gamesFinished metric.Int64Counter
)

func init() {
	var err error
	gamesFinished, err = meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that reached a win or a draw"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		otel.Handle(err)
	}
}

// MoveCalculator picks the opponent's cell for a difficulty tier.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board, difficulty game.Difficulty) (int, error)
}

// Options configures a Controller. Calculator is required.
type Options struct {
	ID            string
	Calculator    MoveCalculator
	Scheduler     Scheduler
	OpponentDelay time.Duration
	Publisher     events.Publisher
	// OnChange receives a snapshot after every state change. It runs with the
	// controller locked and must not call back into the controller.
	OnChange func(Snapshot)
}

// Controller owns one player's session: board, turn, tier and tally.
// All transitions are serialized; the opponent's reply is applied by a
// scheduled callback that is disarmed by any reset.
type Controller struct {
	id         string
	calculator MoveCalculator
	scheduler  Scheduler
	delay      time.Duration
	publisher  events.Publisher
	onChange   func(Snapshot)

	// publishMu is taken before mu is released, so events leave in the
	// order their transitions were applied.
	publishMu sync.Mutex

	mu         sync.Mutex
	state      *state // nil while the player chooses a difficulty
	pending    Timer
	generation uint64
	outbox     []events.Event
	closed     bool
}

// NewController creates a controller in the choose-difficulty state.
func NewController(opts Options) *Controller {
	c := &Controller{
		id:         opts.ID,
		calculator: opts.Calculator,
		scheduler:  opts.Scheduler,
		delay:      opts.OpponentDelay,
		publisher:  opts.Publisher,
		onChange:   opts.OnChange,
	}
	if c.scheduler == nil {
		c.scheduler = RealScheduler()
	}
	if c.delay <= 0 {
		c.delay = defaultOpponentDelay
	}
	if c.publisher == nil {
		c.publisher = events.NopPublisher{}
	}
	if c.onChange == nil {
		c.onChange = func(Snapshot) {}
	}
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Snapshot returns the current view of the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectDifficulty starts a fresh session at the given tier, discarding any
// current game and the score tally.
func (c *Controller) SelectDifficulty(ctx context.Context, difficulty game.Difficulty) error {
	ctx, span := tracer.Start(ctx, "session.SelectDifficulty", trace.WithAttributes(
		attribute.String("session.id", c.id),
		attribute.String("game.difficulty", string(difficulty)),
	))
	defer span.End()

	if !difficulty.Valid() {
		err := fmt.Errorf("%q: %w", difficulty, game.ErrUnknownDifficulty)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unknown difficulty")
		return err
	}

	c.update(ctx, func() bool {
		c.disarm()
		c.state = newState(difficulty, Scores{})
		c.queueEvent(ctx, events.TypeSessionStarted, events.SessionStartedPayload{
			SessionID:  c.id,
			Difficulty: string(difficulty),
		})
		slog.InfoContext(ctx, "Session started", "session.id", c.id, "game.difficulty", difficulty)
		return true
	})
	return nil
}

// Click plays X at cell. Clicks on an occupied cell, outside the human's turn or
// after the game ended are ignored. A cell outside 0-8 is a caller bug and panics.
func (c *Controller) Click(ctx context.Context, cell int) {
	if !game.ValidIndex(cell) {
		panic(fmt.Errorf("session.Click(%d): %w", cell, game.ErrInvalidIndex))
	}

	ctx, span := tracer.Start(ctx, "session.Click", trace.WithAttributes(
		attribute.String("session.id", c.id),
		attribute.Int("move.cell", cell),
	))
	defer span.End()

	c.update(ctx, func() bool {
		if c.state == nil {
			slog.DebugContext(ctx, "Ignoring click before a difficulty is chosen", "session.id", c.id)
			span.SetAttributes(attribute.Bool("move.valid", false))
			return false
		}
		if phase, _ := c.state.phase(); phase != AwaitingHuman {
			slog.DebugContext(ctx, "Ignoring click outside the human turn", "session.id", c.id, "phase", phase.String())
			span.SetAttributes(attribute.Bool("move.valid", false))
			return false
		}

		board, err := c.state.board.Place(cell, game.PlayerX)
		if err != nil {
			slog.DebugContext(ctx, "Ignoring click", "session.id", c.id, "move.cell", cell, "error", err)
			span.SetAttributes(attribute.Bool("move.valid", false))
			return false
		}

		span.SetAttributes(attribute.Bool("move.valid", true))
		c.apply(ctx, board, game.PlayerX)
		return true
	})
}

// NewGame clears the board and gives the first move to the human. The tally is kept.
func (c *Controller) NewGame(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.NewGame", trace.WithAttributes(
		attribute.String("session.id", c.id),
	))
	defer span.End()

	c.update(ctx, func() bool {
		if c.state == nil {
			return false
		}
		c.disarm()
		c.state = newState(c.state.difficulty, c.state.scores)
		return true
	})
}

// ResetScores zeroes the tally and starts a new game at the same tier.
func (c *Controller) ResetScores(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.ResetScores", trace.WithAttributes(
		attribute.String("session.id", c.id),
	))
	defer span.End()

	c.update(ctx, func() bool {
		if c.state == nil {
			return false
		}
		c.disarm()
		c.state = newState(c.state.difficulty, Scores{})
		c.queueEvent(ctx, events.TypeScoresReset, events.ScoresResetPayload{SessionID: c.id})
		return true
	})
}

// ReturnToMenu discards the session, tally included.
func (c *Controller) ReturnToMenu(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.ReturnToMenu", trace.WithAttributes(
		attribute.String("session.id", c.id),
	))
	defer span.End()

	c.update(ctx, func() bool {
		if c.state == nil {
			return false
		}
		c.disarm()
		c.state = nil
		return true
	})
}

// Close disarms any pending opponent move. The controller ignores every later call.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarm()
	c.closed = true
}

// opponentMove is the scheduled callback armed on entering AwaitingOpponent.
// A callback whose generation is stale belongs to a reset game and does nothing.
func (c *Controller) opponentMove(generation uint64) {
	ctx, span := tracer.Start(context.Background(), "session.opponentMove", trace.WithAttributes(
		attribute.String("session.id", c.id),
	))
	defer span.End()

	c.update(ctx, func() bool {
		if generation != c.generation || c.state == nil {
			slog.DebugContext(ctx, "Dropping stale opponent move", "session.id", c.id)
			span.SetAttributes(attribute.Bool("move.stale", true))
			return false
		}
		c.pending = nil
		if phase, _ := c.state.phase(); phase != AwaitingOpponent {
			return false
		}

		cell, err := c.calculator.CalculateNextMove(ctx, c.state.board, c.state.difficulty)
		if err != nil {
			// AwaitingOpponent implies a live board with an empty cell, so this is a
			// calculator bug. The game stays put until the human resets it.
			slog.ErrorContext(ctx, "Opponent could not pick a move", "session.id", c.id, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Opponent could not pick a move")
			return false
		}

		board, err := c.state.board.Place(cell, game.PlayerO)
		if err != nil {
			slog.ErrorContext(ctx, "Opponent picked an illegal move", "session.id", c.id, "move.cell", cell, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Opponent picked an illegal move")
			return false
		}

		span.SetAttributes(attribute.Int("move.cell", cell))
		c.apply(ctx, board, game.PlayerO)
		return true
	})
}

// apply commits a move, then settles the game or hands the turn over.
func (c *Controller) apply(ctx context.Context, board game.Board, mark game.PlayerMark) {
	c.state.board = board
	c.state.turn = mark.Opponent()

	phase, outcome := c.state.phase()
	switch phase {
	case Won, Drawn:
		c.recordResult(ctx, outcome)
	case AwaitingOpponent:
		c.generation++
		generation := c.generation
		c.pending = c.scheduler.AfterFunc(c.delay, func() { c.opponentMove(generation) })
	}
}

func (c *Controller) recordResult(ctx context.Context, outcome game.Outcome) {
	result := events.OutcomeDraw
	switch outcome.Winner {
	case game.PlayerX:
		c.state.scores.Human++
		result = events.OutcomeHuman
	case game.PlayerO:
		c.state.scores.Opponent++
		result = events.OutcomeOpponent
	default:
		c.state.scores.Draws++
	}

	gamesFinished.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", result),
		attribute.String("game.difficulty", string(c.state.difficulty)),
	))
	c.queueEvent(ctx, events.TypeGameFinished, events.GameFinishedPayload{
		SessionID:  c.id,
		Difficulty: string(c.state.difficulty),
		Outcome:    result,
		Moves:      game.Size - len(c.state.board.EmptyCells()),
	})
	slog.InfoContext(ctx, "Game finished", "session.id", c.id, "outcome", result,
		"scores.human", c.state.scores.Human, "scores.ai", c.state.scores.Opponent, "scores.draws", c.state.scores.Draws)
}

// disarm invalidates the pending opponent move, even one already firing.
func (c *Controller) disarm() {
	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// update runs fn under the lock. fn reports whether state changed; only then is
// OnChange called. Queued events are published once the lock is released, in
// transition order across goroutines.
func (c *Controller) update(ctx context.Context, fn func() bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if fn() {
		c.onChange(c.snapshotLocked())
	}
	outbox := c.outbox
	c.outbox = nil
	if len(outbox) == 0 {
		c.mu.Unlock()
		return
	}
	c.publishMu.Lock()
	c.mu.Unlock()
	defer c.publishMu.Unlock()

	for _, event := range outbox {
		if err := c.publisher.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "Failed to publish session event", "session.id", c.id, "event.type", event.Type, "error", err)
		}
	}
}

func (c *Controller) queueEvent(ctx context.Context, eventType string, payload any) {
	event, err := events.New(eventType, payload)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build session event", "session.id", c.id, "error", err)
		return
	}
	c.outbox = append(c.outbox, event)
}

func (c *Controller) snapshotLocked() Snapshot {
	if c.state == nil {
		return Snapshot{Status: StatusChooseDifficulty}
	}
	return c.state.snapshot()
}
