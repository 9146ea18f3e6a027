package game

import (
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X" // human, always moves first
	PlayerO PlayerMark = "O" // computer opponent

	// Board boundaries
	BorderMin = 0
	BorderMax = 8
	Size      = BorderMax + 1
)

var (
	ErrInvalidIndex = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrInvalidMark  = errors.New("invalid mark")
)

// Board is the 3x3 grid in row-major order. It is a value type: Place returns
// a new board and never touches the receiver.
type Board [Size]PlayerMark

// ValidIndex reports whether i addresses a cell of the board.
func ValidIndex(i int) bool {
	return i >= BorderMin && i <= BorderMax
}

// Opponent returns the other player's mark.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// At returns the mark at index i. An index outside 0-8 is a caller bug and panics.
func (b Board) At(i int) PlayerMark {
	if !ValidIndex(i) {
		panic(fmt.Errorf("board.At(%d): %w", i, ErrInvalidIndex))
	}
	return b[i]
}

// Place returns a copy of the board with mark placed at index i.
func (b Board) Place(i int, mark PlayerMark) (Board, error) {
	if !ValidIndex(i) {
		return b, fmt.Errorf("place %d: %w", i, ErrInvalidIndex)
	}
	if mark != PlayerX && mark != PlayerO {
		return b, fmt.Errorf("place %q: %w", mark, ErrInvalidMark)
	}
	if b[i] != None {
		return b, fmt.Errorf("place %d: %w", i, ErrCellOccupied)
	}

	b[i] = mark
	return b, nil
}

// EmptyCells lists the indices of all empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, Size)
	for i, cell := range b {
		if cell == None {
			cells = append(cells, i)
		}
	}
	return cells
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// Count returns how many cells hold mark.
func (b Board) Count(mark PlayerMark) int {
	n := 0
	for _, cell := range b {
		if cell == mark {
			n++
		}
	}
	return n
}

// NextTurn derives whose turn it is from the mark counts. X always opens.
func (b Board) NextTurn() PlayerMark {
	if b.Count(PlayerX) > b.Count(PlayerO) {
		return PlayerO
	}
	return PlayerX
}
