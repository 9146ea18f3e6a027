package game

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects the opponent's move policy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty accepts the tier names case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownDifficulty)
	}
}

func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}
