package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, eventType string, payload any) Event {
	t.Helper()
	event, err := New(eventType, payload)
	require.NoError(t, err)
	return event
}

func TestStats_Apply(t *testing.T) {
	stats := NewStats()

	events := []Event{
		mustEvent(t, TypeSessionStarted, SessionStartedPayload{SessionID: "a", Difficulty: "hard"}),
		mustEvent(t, TypeGameFinished, GameFinishedPayload{SessionID: "a", Difficulty: "hard", Outcome: OutcomeDraw, Moves: 9}),
		mustEvent(t, TypeGameFinished, GameFinishedPayload{SessionID: "a", Difficulty: "hard", Outcome: OutcomeDraw, Moves: 9}),
		mustEvent(t, TypeGameFinished, GameFinishedPayload{SessionID: "a", Difficulty: "easy", Outcome: OutcomeHuman, Moves: 5}),
		mustEvent(t, TypeScoresReset, ScoresResetPayload{SessionID: "a"}),
		{Type: "something_else"},
	}
	for _, event := range events {
		require.NoError(t, stats.Apply(event))
	}
	stats.SessionOpened()
	stats.SessionOpened()
	stats.SessionClosed()

	assert.Equal(t, StatsSnapshot{
		ActiveSessions:  1,
		SessionsStarted: 1,
		ScoreResets:     1,
		GamesFinished: map[string]map[string]int{
			"hard": {OutcomeDraw: 2},
			"easy": {OutcomeHuman: 1},
		},
	}, stats.Snapshot())
}

func TestStats_ApplyBadPayload(t *testing.T) {
	stats := NewStats()
	err := stats.Apply(Event{Type: TypeGameFinished, Payload: []byte(`{"outcome":`)})
	assert.Error(t, err)
	assert.Empty(t, stats.Snapshot().GamesFinished)
}

func TestStats_SnapshotIsACopy(t *testing.T) {
	stats := NewStats()
	require.NoError(t, stats.Apply(mustEvent(t, TypeGameFinished, GameFinishedPayload{Difficulty: "medium", Outcome: OutcomeOpponent})))

	snap := stats.Snapshot()
	snap.GamesFinished["medium"][OutcomeOpponent] = 100

	assert.Equal(t, 1, stats.Snapshot().GamesFinished["medium"][OutcomeOpponent])
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, Event) error {
	p.calls++
	return errors.New("down")
}

func TestStatsPublisher(t *testing.T) {
	stats := NewStats()
	next := &failingPublisher{}
	publisher := StatsPublisher{Stats: stats, Next: next}

	err := publisher.Publish(context.Background(), mustEvent(t, TypeSessionStarted, SessionStartedPayload{SessionID: "b"}))

	assert.Error(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, stats.Snapshot().SessionsStarted)

	require.NoError(t, StatsPublisher{Stats: stats}.Publish(context.Background(), mustEvent(t, TypeScoresReset, ScoresResetPayload{})))
	assert.Equal(t, 1, stats.Snapshot().ScoreResets)
}
