package controller

import (
	"ctchen222/tictactoe-minimax/internal/api/response"
	"ctchen222/tictactoe-minimax/internal/api/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GuestController hands out guest identities.
type GuestController struct {
	authService service.AuthService
}

// NewGuestController creates a new GuestController.
func NewGuestController(authService service.AuthService) *GuestController {
	return &GuestController{
		authService: authService,
	}
}

// GuestLogin returns a fresh player ID and a token for the websocket endpoint.
func (gc *GuestController) GuestLogin(c *gin.Context) {
	guest, err := gc.authService.GuestLogin(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Guest login failed", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "could not create guest")
		return
	}

	response.SuccessResponse(c, http.StatusCreated, guest)
}
