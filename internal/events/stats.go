package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
)

// Stats aggregates session events into counters for the stats endpoint.
type Stats struct {
	mu              sync.Mutex
	sessionsStarted int
	scoreResets     int
	finished        map[string]map[string]int // difficulty -> outcome -> games

	activeSessions atomic.Int64
}

// StatsSnapshot is the JSON view of Stats.
type StatsSnapshot struct {
	ActiveSessions  int64                     `json:"active_sessions"`
	SessionsStarted int                       `json:"sessions_started"`
	ScoreResets     int                       `json:"score_resets"`
	GamesFinished   map[string]map[string]int `json:"games_finished"`
}

func NewStats() *Stats {
	return &Stats{finished: make(map[string]map[string]int)}
}

// Apply folds one event into the counters. Unknown event types are ignored.
func (s *Stats) Apply(event Event) error {
	switch event.Type {
	case TypeSessionStarted:
		s.mu.Lock()
		s.sessionsStarted++
		s.mu.Unlock()

	case TypeScoresReset:
		s.mu.Lock()
		s.scoreResets++
		s.mu.Unlock()

	case TypeGameFinished:
		var payload GameFinishedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("could not unmarshal %s payload: %w", event.Type, err)
		}
		s.mu.Lock()
		byOutcome, ok := s.finished[payload.Difficulty]
		if !ok {
			byOutcome = make(map[string]int)
			s.finished[payload.Difficulty] = byOutcome
		}
		byOutcome[payload.Outcome]++
		s.mu.Unlock()
	}
	return nil
}

// SessionOpened and SessionClosed track rooms live on this instance.
func (s *Stats) SessionOpened() { s.activeSessions.Add(1) }
func (s *Stats) SessionClosed() { s.activeSessions.Add(-1) }

// Snapshot returns a deep copy of the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	finished := make(map[string]map[string]int, len(s.finished))
	for difficulty, byOutcome := range s.finished {
		copied := make(map[string]int, len(byOutcome))
		for outcome, n := range byOutcome {
			copied[outcome] = n
		}
		finished[difficulty] = copied
	}

	return StatsSnapshot{
		ActiveSessions:  s.activeSessions.Load(),
		SessionsStarted: s.sessionsStarted,
		ScoreResets:     s.scoreResets,
		GamesFinished:   finished,
	}
}

// StatsPublisher records every event into Stats before handing it to Next.
// It is used when no Redis subscriber feeds Stats.
type StatsPublisher struct {
	Stats *Stats
	Next  Publisher
}

func (p StatsPublisher) Publish(ctx context.Context, event Event) error {
	if err := p.Stats.Apply(event); err != nil {
		return err
	}
	if p.Next == nil {
		return nil
	}
	return p.Next.Publish(ctx, event)
}
