package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/authz"
	"bounties-api/internal/service/auth"
)

const CallerContextKey = "caller"

// Authenticate resolves the bearer token, if any, into the request's caller.
// Requests without a token continue as anonymous; a malformed or invalid
// token is rejected.
func Authenticate(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return Unauthorized("Invalid authorization header format")
		}

		caller, err := authService.Caller(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(CallerContextKey, caller)
		return c.Next()
	}
}

func GetCaller(c *fiber.Ctx) authz.Caller {
	caller, ok := c.Locals(CallerContextKey).(authz.Caller)
	if !ok {
		return authz.Caller{}
	}
	return caller
}
