package middleware

import (
	"errors"
	"strings"

	"github.com/atomicsystems/atomic-backend/internal/apperr"
	"github.com/atomicsystems/atomic-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// RequireAuth resolves the caller from the Authorization header and stores the
// user id in context locals. CORS preflight requests pass through untouched.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		claims, err := extractClaims(c, secret)
		if err != nil {
			return err
		}
		if claims.Type != token.TypeAccess {
			return apperr.Unauthorized("INVALID_TOKEN", "Invalid token type")
		}

		c.Locals(userIDKey, claims.SubjectID)
		return c.Next()
	}
}

// OptionalAuth attaches the caller identity when a valid access token is
// present and silently continues without one otherwise.
func OptionalAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := extractClaims(c, secret)
		if err == nil && claims.Type == token.TypeAccess {
			c.Locals(userIDKey, claims.SubjectID)
		}
		return c.Next()
	}
}

// UserID reads the authenticated caller id set by RequireAuth.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("MISSING_TOKEN", "Authorization required")
	}
	return id, nil
}

func extractClaims(c *fiber.Ctx, secret []byte) (*token.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, apperr.Unauthorized("MISSING_TOKEN", "Authorization header is required")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, apperr.Unauthorized("INVALID_AUTH_FORMAT", `Invalid authorization format. Use "Bearer <token>"`)
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return nil, apperr.Unauthorized("MISSING_TOKEN", "Token is required")
	}

	claims, err := token.Verify(secret, raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, apperr.Unauthorized("TOKEN_EXPIRED", "Token has expired")
		}
		return nil, apperr.Unauthorized("INVALID_TOKEN", "Invalid token")
	}
	return claims, nil
}
