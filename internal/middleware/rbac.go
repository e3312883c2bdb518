package middleware

import (
	"github.com/gofiber/fiber/v2"

	"bounties-api/internal/authz"
	"bounties-api/internal/domain"
)

// IdentityParam is the route parameter naming the identity a request acts on.
const IdentityParam = "public_address"

// Require guards a route with the checks op needs that can be decided
// before loading a record. Record ownership is checked by the service.
func Require(op authz.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := ""
		if authz.Requires(op, authz.IdentityMatches) {
			address, err := domain.NormalizeIdentity(c.Params(IdentityParam))
			if err != nil {
				return err
			}
			target = address
		}

		if err := authz.Authorize(op, GetCaller(c), target, true); err != nil {
			return err
		}
		return c.Next()
	}
}
