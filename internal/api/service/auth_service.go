package service

import (
	"context"
	"crypto/rand"
	"ctchen222/tictactoe-minimax/internal/api/models"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "tictactoe-minimax"

var ErrInvalidToken = errors.New("invalid token")

// AuthService issues and checks guest identities.
type AuthService interface {
	GuestLogin(ctx context.Context) (*models.GuestResponse, error)
	ParseToken(token string) (string, error)
}

type authService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates an AuthService signing HS256 tokens with secret.
// An empty secret is replaced by a random key, so tokens only verify on this process.
func NewAuthService(secret string, ttl time.Duration) AuthService {
	if secret == "" {
		slog.Warn("No JWT secret configured, using a random per-process key")
		secret = rand.Text()
	}
	return &authService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GuestLogin generates a player ID and a token naming it.
func (s *authService) GuestLogin(ctx context.Context) (*models.GuestResponse, error) {
	playerID := uuid.New().String()
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   playerID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign guest token: %w", err)
	}

	return &models.GuestResponse{PlayerID: playerID, Token: tokenString}, nil
}

// ParseToken returns the player ID carried by a valid token.
func (s *authService) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
