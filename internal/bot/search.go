package bot

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"math"
)

const winScore = 10

// SearchResult is the outcome of a top-level search.
type SearchResult struct {
	Move  int
	Score int
	Nodes int // positions visited, root children included
}

// BestMove returns the optimal cell for O on board. Every empty cell is tried in
// ascending order and the first one with the strictly greatest minimax value wins,
// so the same board always yields the same move.
func BestMove(board game.Board) (SearchResult, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 || game.Evaluate(board).Terminal() {
		return SearchResult{Move: -1}, ErrNoAvailableMoves
	}

	s := &searcher{board: board}
	result := SearchResult{Move: -1, Score: math.MinInt}
	for _, i := range empty {
		s.board[i] = game.PlayerO
		score := s.minimax(0, math.MinInt, math.MaxInt, false)
		s.board[i] = game.None

		if score > result.Score {
			result.Score = score
			result.Move = i
		}
	}
	result.Nodes = s.nodes
	return result, nil
}

// Minimax scores board for O (maximizing) against X (minimizing) with
// alpha-beta pruning. depth counts plies already searched from the caller's root.
func Minimax(board game.Board, depth, alpha, beta int, maximizing bool) int {
	s := &searcher{board: board}
	return s.minimax(depth, alpha, beta, maximizing)
}

// searcher mutates its private board copy in place and undoes each placement.
type searcher struct {
	board game.Board
	nodes int
}

func (s *searcher) minimax(depth, alpha, beta int, maximizing bool) int {
	s.nodes++

	switch outcome := game.Evaluate(s.board); outcome.Status {
	case game.Won:
		if outcome.Winner == game.PlayerO {
			return winScore - depth
		}
		return depth - winScore
	case game.Drawn:
		return 0
	}

	if maximizing {
		best := math.MinInt
		for i := range s.board {
			if s.board[i] != game.None {
				continue
			}
			s.board[i] = game.PlayerO
			best = max(best, s.minimax(depth+1, alpha, beta, false))
			s.board[i] = game.None

			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for i := range s.board {
		if s.board[i] != game.None {
			continue
		}
		s.board[i] = game.PlayerX
		best = min(best, s.minimax(depth+1, alpha, beta, true))
		s.board[i] = game.None

		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
