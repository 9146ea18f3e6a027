package room

import "ctchen222/tictactoe-minimax/internal/session"

// queueUpdate is the controller's OnChange hook. It runs under the controller
// lock, so it never blocks: an unsent snapshot is replaced by the newer one.
func (r *Room) queueUpdate(snap session.Snapshot) {
	select {
	case r.updates <- snap:
		return
	default:
	}

	select {
	case <-r.updates:
	default:
	}

	select {
	case r.updates <- snap:
	default:
	}
}

// Snapshot returns the session's current state.
func (r *Room) Snapshot() session.Snapshot {
	return r.controller.Snapshot()
}
