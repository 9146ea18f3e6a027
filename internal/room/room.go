package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/player"
	"ctchen222/tictactoe-minimax/internal/session"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

const (
	heartbeatInterval = 10 * time.Second
)

var tracer = otel.Tracer("room")

// Room binds one connected player to one game session.
type Room struct {
	ID         string
	Player     *player.Player
	controller *session.Controller

	updates   chan session.Snapshot
	done      chan struct{}
	closeOnce sync.Once
}

// NewRoom creates a room whose controller is built from opts. ID and OnChange
// are owned by the room and overwritten.
func NewRoom(id string, p *player.Player, opts session.Options) *Room {
	r := &Room{
		ID:      id,
		Player:  p,
		updates: make(chan session.Snapshot, 1),
		done:    make(chan struct{}),
	}
	opts.ID = id
	opts.OnChange = r.queueUpdate
	r.controller = session.NewController(opts)
	return r
}

// Start sends the initial state and launches the read and write loops. When the
// player goes away the room closes itself and is handed to unregister, unless
// ctx is done first.
func (r *Room) Start(ctx context.Context, unregister chan<- *Room) {
	r.queueUpdate(r.controller.Snapshot())
	go r.run()
	go func() {
		r.ReadPump()
		r.Close()
		select {
		case unregister <- r:
		case <-ctx.Done():
		}
	}()
}

// Close stops the session and the connection. It is safe to call more than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.controller.Close()
		if err := r.Player.Conn.Close(); err != nil {
			slog.Debug("Error closing player connection", "room.id", r.ID, "error", err)
		}
	})
}

// Done is closed once the room has shut down.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// run writes state updates and heartbeats until the room closes.
func (r *Room) run() {
	ctx := context.Background()
	pingTicker := time.NewTicker(heartbeatInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-r.done:
			slog.DebugContext(ctx, "Room run goroutine stopping.", "room.id", r.ID)
			return

		case snap := <-r.updates:
			r.sendUpdate(ctx, snap)

		case <-pingTicker.C:
			if err := r.Player.Send(websocket.PingMessage, nil); err != nil {
				slog.WarnContext(ctx, "Failed to send ping to player, assuming disconnect", "player.id", r.Player.ID, "error", err)
			}
		}
	}
}
