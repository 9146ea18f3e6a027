package game

// Status is the state of a board as seen by the evaluator.
type Status int

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// Outcome is the evaluated result of a board. Winner is set only when Status is Won.
type Outcome struct {
	Status Status
	Winner PlayerMark
}

// Terminal reports whether the game on the evaluated board is over.
func (o Outcome) Terminal() bool {
	return o.Status != InProgress
}

// WinLines are checked in this order: rows, columns, diagonals.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CheckWinner returns the mark holding the first completed line, or None.
func CheckWinner(board Board) PlayerMark {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != None && a == b && b == c {
			return a
		}
	}
	return None
}

// IsDraw checks if the board is full with no completed line.
func IsDraw(board Board) bool {
	return CheckWinner(board) == None && board.IsFull()
}

// Evaluate derives the status of a board. It has no side effects.
func Evaluate(board Board) Outcome {
	if winner := CheckWinner(board); winner != None {
		return Outcome{Status: Won, Winner: winner}
	}
	if board.IsFull() {
		return Outcome{Status: Drawn}
	}
	return Outcome{Status: InProgress}
}
