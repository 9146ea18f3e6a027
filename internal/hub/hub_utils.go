package hub

import (
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/events"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"math/rand/v2"
	"time"
)

// newRand gives each room its own source. With a configured seed the sequence
// of rooms is reproducible.
func (h *Hub) newRand() bot.Rand {
	seq := h.roomSeq.Add(1)
	seed := h.opts.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seq))
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Stats returns the aggregated session counters.
func (h *Hub) Stats() events.StatsSnapshot {
	return h.stats.Snapshot()
}
