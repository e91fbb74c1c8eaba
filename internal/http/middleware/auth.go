package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"smartsuite/internal/auth"
)

// UserClaimsKey is the key under which validated claims are stored in
// Fiber's context locals.
const UserClaimsKey = "user_claims"

// Auth validates the Bearer token and injects user claims into context.
// Requests without a valid principal are rejected before any handler runs;
// every mutating operation downstream relies on this.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.ErrUnauthorized
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return fiber.ErrUnauthorized
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(UserClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by Auth, or nil when the request
// was not authenticated.
func ClaimsFromCtx(c *fiber.Ctx) *auth.UserClaims {
	if v := c.Locals(UserClaimsKey); v != nil {
		if claims, ok := v.(*auth.UserClaims); ok {
			return claims
		}
	}
	return nil
}
