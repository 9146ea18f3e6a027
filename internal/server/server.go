package server

import (
	"ctchen222/tictactoe-minimax/internal/api/controller"
	"ctchen222/tictactoe-minimax/internal/api/response"
	"ctchen222/tictactoe-minimax/internal/api/service"
	"ctchen222/tictactoe-minimax/internal/events"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"ctchen222/tictactoe-minimax/internal/player"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Hub is what the server needs from the room manager.
type Hub interface {
	Register() chan<- *types.RegistrationRequest
	Stats() events.StatsSnapshot
}

type Server struct {
	hub      Hub
	auth     service.AuthService
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

func NewServer(h Hub, auth service.AuthService) *Server {
	s := &Server{
		hub:  h,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.routes()
	return s
}

// Engine returns the HTTP handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	guestController := controller.NewGuestController(s.auth)
	statsController := controller.NewStatsController(s.hub)

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/ws", s.handleWebSocket)

	api := engine.Group("/api")
	api.POST("/guest", guestController.GuestLogin)
	api.GET("/stats", statsController.Stats)

	return engine
}

// handleWebSocket resolves the player, upgrades the connection and hands the
// player to the hub. A missing token gets an anonymous player; a bad one is refused.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	playerID := uuid.New().String()
	if token := c.Query("token"); token != "" {
		id, err := s.auth.ParseToken(token)
		if err != nil {
			slog.WarnContext(ctx, "Rejected websocket token", "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Invalid token")
			response.ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
			return
		}
		playerID = id
	}
	span.SetAttributes(attribute.String("player.id", playerID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	s.hub.Register() <- &types.RegistrationRequest{
		Player: player.NewPlayer(playerID, conn),
		Ctx:    ctx,
	}
}
