package middleware

import (
	"errors"
	"strings"

	"developer-directory/internal/pkg/jwt"
	"developer-directory/internal/pkg/metrics"
	"developer-directory/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
)

type AuthMiddleware struct {
	jwt     jwt.Service
	metrics *metrics.Metrics
}

func NewAuthMiddleware(jwtSvc jwt.Service, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, metrics: m}
}

// Middleware requires an "Authorization: Bearer <token>" header.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			m.metrics.AuthFailed("token")
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
		}
		return m.authenticate(c, token)
	}
}

// QueryTokenMiddleware also accepts the token as a "token" query parameter,
// for clients such as browsers opening a websocket that cannot set headers.
func (m *AuthMiddleware) QueryTokenMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			m.metrics.AuthFailed("token")
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
		}
		return m.authenticate(c, token)
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx, token string) error {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		m.metrics.AuthFailed("token")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}
	m.metrics.AuthSucceeded("token")

	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)

	return c.Next()
}

// UserID returns the authenticated account id placed by the auth middleware.
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
