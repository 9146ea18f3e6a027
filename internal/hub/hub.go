package hub

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/events"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"ctchen222/tictactoe-minimax/internal/room"
	"ctchen222/tictactoe-minimax/internal/session"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("hub")
	meter  = otel.Meter("hub")

	activeSessions metric.Int64UpDownCounter
)

func init() {
	var err error
	activeSessions, err = meter.Int64UpDownCounter("tictactoe.sessions.active",
		metric.WithDescription("Rooms currently open on this instance"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		otel.Handle(err)
	}
}

// Options configures a Hub.
type Options struct {
	OpponentDelay time.Duration
	// RandomSeed of 0 seeds every room from the clock.
	RandomSeed uint64
	// Redis, when set, carries session events between instances and feeds Stats.
	Redis *redis.Client
	// Scheduler overrides the wall clock for opponent moves.
	Scheduler session.Scheduler
}

// Hub manages all the rooms of this instance.
type Hub struct {
	rooms      map[string]*room.Room
	register   chan *types.RegistrationRequest
	unregister chan *room.Room

	opts      Options
	rdb       *redis.Client
	publisher events.Publisher
	stats     *events.Stats
	roomSeq   atomic.Uint64
}

// NewHub creates a new hub.
func NewHub(opts Options) *Hub {
	stats := events.NewStats()

	// Without Redis the hub's own events are the only source for Stats.
	var publisher events.Publisher = events.StatsPublisher{Stats: stats}
	if opts.Redis != nil {
		publisher = events.NewRedisPublisher(opts.Redis)
	}

	return &Hub{
		rooms:      make(map[string]*room.Room),
		register:   make(chan *types.RegistrationRequest),
		unregister: make(chan *room.Room),
		opts:       opts,
		rdb:        opts.Redis,
		publisher:  publisher,
		stats:      stats,
	}
}

// Run owns the room map until ctx is done, then closes every room.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.runEventSubscriber(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Hub stopping, closing rooms", "rooms.count", len(h.rooms))
			for id, r := range h.rooms {
				r.Close()
				h.removeRoom(ctx, id)
			}
			return

		case req := <-h.register:
			h.registerPlayer(ctx, req)

		case r := <-h.unregister:
			if _, ok := h.rooms[r.ID]; ok {
				h.removeRoom(ctx, r.ID)
				slog.InfoContext(ctx, "Room closed", "room.id", r.ID, "player.id", r.Player.ID)
			}
		}
	}
}

func (h *Hub) removeRoom(ctx context.Context, id string) {
	delete(h.rooms, id)
	h.stats.SessionClosed()
	activeSessions.Add(ctx, -1)
}
