package middleware

import (
	"context"
	"errors"
	"strings"

	"workskill/internal/domain/student"
	"workskill/internal/pkg/jwt"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (jwt.Claims, error)
}

type AuthMiddleware struct {
	auth       TokenAuthenticator
	cookieName string
}

func NewAuthMiddleware(auth TokenAuthenticator, cookieName string) *AuthMiddleware {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = "jwt"
	}
	return &AuthMiddleware{auth: auth, cookieName: cookieName}
}

// Middleware reads the token from the auth cookie, falling back to an
// Authorization bearer header.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimSpace(c.Cookies(m.cookieName))
		if token == "" {
			tok, ok := bearerTokenFromHeader(c.Get("Authorization"))
			if !ok {
				return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
			}
			token = tok
		}

		claims, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireSelfOrHR lets a request through when the path parameter names the
// authenticated user, or when the caller has the hr role.
func RequireSelfOrHR(param string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if UserID(c) == "" {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !CanAccessUser(c, c.Params(param)) {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}

func CanAccessUser(c fiber.Ctx, targetID string) bool {
	userID := UserID(c)
	if userID == "" {
		return false
	}
	return targetID == userID || Role(c) == student.RoleHR
}

func UserID(c fiber.Ctx) string {
	v, _ := c.Locals(CtxUserIDKey).(string)
	return v
}

func Role(c fiber.Ctx) string {
	v, _ := c.Locals(CtxRoleKey).(string)
	return v
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
