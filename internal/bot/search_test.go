package bot

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = game.PlayerX
	o = game.PlayerO
	e = game.None
)

// referenceMinimax is plain minimax without pruning, used to cross-check values.
func referenceMinimax(board game.Board, depth int, maximizing bool) int {
	switch outcome := game.Evaluate(board); outcome.Status {
	case game.Won:
		if outcome.Winner == game.PlayerO {
			return winScore - depth
		}
		return depth - winScore
	case game.Drawn:
		return 0
	}

	mark, best := game.PlayerX, math.MaxInt
	if maximizing {
		mark, best = game.PlayerO, math.MinInt
	}
	for _, i := range board.EmptyCells() {
		next, _ := board.Place(i, mark)
		score := referenceMinimax(next, depth+1, !maximizing)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// mirror swaps X and O so BestMove can play the X side.
func mirror(board game.Board) game.Board {
	for i, cell := range board {
		board[i] = cell.Opponent()
	}
	return board
}

func TestBestMove(t *testing.T) {
	tests := []struct {
		name      string
		board     game.Board
		wantMove  int
		wantScore int
	}{
		{
			name:      "center against a corner opening",
			board:     game.Board{x, e, e, e, e, e, e, e, e},
			wantMove:  4,
			wantScore: 0,
		},
		{
			name:      "edge, not corner, against opposite corners",
			board:     game.Board{x, e, e, e, o, e, e, e, x},
			wantMove:  1,
			wantScore: 0,
		},
		{
			name: "blocks an immediate threat",
			board: game.Board{
				x, x, e,
				e, o, e,
				e, e, e,
			},
			wantMove:  2,
			wantScore: 0,
		},
		{
			// 3 forks and wins two plies later (score 8); 8 wins at once.
			name: "prefers the immediate win over a slower forced win",
			board: game.Board{
				o, x, x,
				e, o, e,
				e, x, e,
			},
			wantMove:  8,
			wantScore: winScore,
		},
		{
			name: "takes the only remaining cell",
			board: game.Board{
				x, o, x,
				x, o, x,
				o, x, e,
			},
			wantMove:  8,
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BestMove(tt.board)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMove, result.Move)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Positive(t, result.Nodes)
		})
	}
}

func TestBestMove_ForkScoresBelowImmediateWin(t *testing.T) {
	// O has just played the fork at 3: X can block only one of 5 and 6.
	board := game.Board{
		o, x, x,
		o, o, e,
		e, x, e,
	}

	got := Minimax(board, 0, math.MinInt, math.MaxInt, false)
	assert.Equal(t, winScore-2, got)

	result, err := BestMove(game.Board{o, x, x, e, o, e, e, x, e})
	require.NoError(t, err)
	assert.Greater(t, result.Score, got)
}

func TestBestMove_Deterministic(t *testing.T) {
	board := game.Board{x, e, e, e, e, e, e, e, e}

	first, err := BestMove(board)
	require.NoError(t, err)
	for range 20 {
		again, err := BestMove(board)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestBestMove_NoMoves(t *testing.T) {
	full := game.Board{x, o, x, x, o, o, o, x, x}
	_, err := BestMove(full)
	require.ErrorIs(t, err, ErrNoAvailableMoves)

	won := game.Board{x, x, x, o, o, e, e, e, e}
	_, err = BestMove(won)
	require.ErrorIs(t, err, ErrNoAvailableMoves)
}

func TestBestMove_NeverLosesToAnyHumanLine(t *testing.T) {
	var games, oWins int

	var play func(board game.Board)
	play = func(board game.Board) {
		for _, cell := range board.EmptyCells() {
			afterX, err := board.Place(cell, game.PlayerX)
			require.NoError(t, err)

			outcome := game.Evaluate(afterX)
			require.NotEqual(t, game.PlayerX, outcome.Winner, "X won with board %v", afterX)
			if outcome.Terminal() {
				games++
				continue
			}

			result, err := BestMove(afterX)
			require.NoError(t, err)
			afterO, err := afterX.Place(result.Move, game.PlayerO)
			require.NoError(t, err)

			outcome = game.Evaluate(afterO)
			if outcome.Terminal() {
				games++
				if outcome.Winner == game.PlayerO {
					oWins++
				}
				continue
			}
			play(afterO)
		}
	}
	play(game.Board{})

	assert.Positive(t, games)
	assert.Positive(t, oWins)
}

func TestBestMove_OppositeCornerLineNeverLost(t *testing.T) {
	// Given: X 0, O 4, X 8, O answers
	board := game.Board{x, e, e, e, o, e, e, e, x}
	result, err := BestMove(board)
	require.NoError(t, err)
	require.NotContains(t, []int{2, 6}, result.Move)
	board, err = board.Place(result.Move, game.PlayerO)
	require.NoError(t, err)

	// When: X tries every continuation against the search
	var walk func(b game.Board)
	walk = func(b game.Board) {
		for _, cell := range b.EmptyCells() {
			next, _ := b.Place(cell, game.PlayerX)
			// Then: X never completes a line
			require.NotEqual(t, game.PlayerX, game.CheckWinner(next))
			if game.Evaluate(next).Terminal() {
				continue
			}
			reply, err := BestMove(next)
			require.NoError(t, err)
			next, _ = next.Place(reply.Move, game.PlayerO)
			if !game.Evaluate(next).Terminal() {
				walk(next)
			}
		}
	}
	walk(board)
}

func TestBestMove_SelfPlayDraws(t *testing.T) {
	var board game.Board
	for !game.Evaluate(board).Terminal() {
		turn := board.NextTurn()

		var (
			result SearchResult
			err    error
		)
		if turn == game.PlayerO {
			result, err = BestMove(board)
		} else {
			result, err = BestMove(mirror(board))
		}
		require.NoError(t, err)

		board, err = board.Place(result.Move, turn)
		require.NoError(t, err)
	}

	assert.Equal(t, game.Outcome{Status: game.Drawn}, game.Evaluate(board))
}

func TestMinimax_LeafValues(t *testing.T) {
	tests := []struct {
		name  string
		board game.Board
		depth int
		want  int
	}{
		{
			name:  "O win is worth less the deeper it is",
			board: game.Board{o, o, o, x, x, e, x, e, e},
			depth: 3,
			want:  winScore - 3,
		},
		{
			name:  "X win is negative and softened by depth",
			board: game.Board{x, x, x, o, o, e, e, e, e},
			depth: 2,
			want:  2 - winScore,
		},
		{
			name:  "draw is zero",
			board: game.Board{x, o, x, x, o, o, o, x, x},
			depth: 5,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Minimax(tt.board, tt.depth, math.MinInt, math.MaxInt, true)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinimax_PruningMatchesPlainSearch(t *testing.T) {
	boards := []game.Board{
		{},
		{x, e, e, e, e, e, e, e, e},
		{e, e, e, e, x, e, e, e, e},
		{x, e, e, e, o, e, e, e, x},
		{x, o, e, e, x, e, e, e, e},
		{x, x, e, e, e, x, o, o, e},
		{e, x, e, o, x, e, e, e, e},
	}

	for _, board := range boards {
		for _, maximizing := range []bool{true, false} {
			want := referenceMinimax(board, 0, maximizing)
			got := Minimax(board, 0, math.MinInt, math.MaxInt, maximizing)
			assert.Equal(t, want, got, "board %v maximizing %v", board, maximizing)
		}
	}
}
