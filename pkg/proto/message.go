package proto

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/session"
)

// Inbound message types.
const (
	TypeSelectDifficulty = "select_difficulty"
	TypeMove             = "move"
	TypeNewGame          = "new_game"
	TypeResetScores      = "reset_scores"
	TypeMenu             = "menu"
)

// Outbound message types.
const (
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type       string `json:"type" validate:"required,oneof=select_difficulty move new_game reset_scores menu"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,max=16"`
	Cell       *int   `json:"cell,omitempty" validate:"omitempty,min=0,max=8"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type       string              `json:"type" validate:"required"`
	Reason     string              `json:"reason,omitempty"`
	Board      *game.Board         `json:"board,omitempty"`
	Status     session.StatusClass `json:"status,omitempty"`
	Difficulty game.Difficulty     `json:"difficulty,omitempty"`
	Scores     *session.Scores     `json:"scores,omitempty"`
	Clickable  *[game.Size]bool    `json:"clickable,omitempty"`
}

// NewUpdate renders a session snapshot for the client.
func NewUpdate(snap session.Snapshot) *ServerToClientMessage {
	board := snap.Board
	scores := snap.Scores
	clickable := snap.Clickable
	return &ServerToClientMessage{
		Type:       TypeUpdate,
		Board:      &board,
		Status:     snap.Status,
		Difficulty: snap.Difficulty,
		Scores:     &scores,
		Clickable:  &clickable,
	}
}

// NewError tells the client a message was rejected.
func NewError(reason string) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeError, Reason: reason}
}
