package session

import (
	"ctchen222/tictactoe-minimax/internal/game"
)

// Phase is the per-game state machine position.
type Phase int

const (
	AwaitingHuman Phase = iota
	AwaitingOpponent
	Won
	Drawn
)

func (p Phase) String() string {
	switch p {
	case AwaitingHuman:
		return "awaiting_human"
	case AwaitingOpponent:
		return "awaiting_opponent"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// StatusClass is the message class shown to the player.
type StatusClass string

const (
	StatusChooseDifficulty StatusClass = "choose-difficulty"
	StatusHumanTurn        StatusClass = "in-progress-human-turn"
	StatusOpponentTurn     StatusClass = "in-progress-opponent-turn"
	StatusWonHuman         StatusClass = "won-human"
	StatusWonOpponent      StatusClass = "won-opponent"
	StatusDrawn            StatusClass = "drawn"
)

// Scores is the tally kept across games of one session.
type Scores struct {
	Human    int `json:"human"`
	Opponent int `json:"ai"`
	Draws    int `json:"draws"`
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Board      game.Board
	Status     StatusClass
	Difficulty game.Difficulty
	Scores     Scores
	Clickable  [game.Size]bool
}

// state is one session: created on difficulty selection, discarded on return to the menu.
// The game status is always derived from board, never stored.
type state struct {
	board      game.Board
	turn       game.PlayerMark
	difficulty game.Difficulty
	scores     Scores
}

func newState(difficulty game.Difficulty, scores Scores) *state {
	return &state{
		turn:       game.PlayerX,
		difficulty: difficulty,
		scores:     scores,
	}
}

func (s *state) phase() (Phase, game.Outcome) {
	outcome := game.Evaluate(s.board)
	switch outcome.Status {
	case game.Won:
		return Won, outcome
	case game.Drawn:
		return Drawn, outcome
	}
	if s.turn == game.PlayerX {
		return AwaitingHuman, outcome
	}
	return AwaitingOpponent, outcome
}

func (s *state) snapshot() Snapshot {
	snap := Snapshot{
		Board:      s.board,
		Difficulty: s.difficulty,
		Scores:     s.scores,
	}

	phase, outcome := s.phase()
	switch phase {
	case AwaitingHuman:
		snap.Status = StatusHumanTurn
		for i, cell := range s.board {
			snap.Clickable[i] = cell == game.None
		}
	case AwaitingOpponent:
		snap.Status = StatusOpponentTurn
	case Won:
		snap.Status = StatusWonOpponent
		if outcome.Winner == game.PlayerX {
			snap.Status = StatusWonHuman
		}
	case Drawn:
		snap.Status = StatusDrawn
	}
	return snap
}
