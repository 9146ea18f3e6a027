package events

import (
	"encoding/json"
	"fmt"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeSessionStarted = "session_started"
	TypeGameFinished   = "game_finished"
	TypeScoresReset    = "scores_reset"
)

// Outcomes carried by GameFinishedPayload.
const (
	OutcomeHuman    = "human"
	OutcomeOpponent = "opponent"
	OutcomeDraw     = "draw"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionStartedPayload is the payload for the "session_started" event.
type SessionStartedPayload struct {
	SessionID  string `json:"session_id"`
	Difficulty string `json:"difficulty"`
}

// GameFinishedPayload is the payload for the "game_finished" event.
type GameFinishedPayload struct {
	SessionID  string `json:"session_id"`
	Difficulty string `json:"difficulty"`
	Outcome    string `json:"outcome"`
	Moves      int    `json:"moves"`
}

// ScoresResetPayload is the payload for the "scores_reset" event.
type ScoresResetPayload struct {
	SessionID string `json:"session_id"`
}

// New wraps payload into an Event of the given type.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}
