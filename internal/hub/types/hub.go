package types

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/player"
)

// RegistrationRequest asks the hub to open a session for a freshly connected player.
type RegistrationRequest struct {
	Player *player.Player
	Ctx    context.Context
}
