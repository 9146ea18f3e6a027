package player

import "sync"

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player is the human on the other end of one websocket.
type Player struct {
	ID   string
	Conn Connection

	writeMu sync.Mutex
}

// NewPlayer creates a new player.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{ID: id, Conn: conn}
}

// Send writes one frame. Websocket connections allow a single concurrent writer,
// so every write goes through here.
func (p *Player) Send(messageType int, data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteMessage(messageType, data)
}
