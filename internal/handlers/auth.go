package handlers

import (
	"Folio/internal/authz"
	"Folio/internal/domain"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// AuthMiddleware resolves the caller from the bearer token and stores it in
// the request locals.
func AuthMiddleware(verifier authz.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return writeError(c, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized))
		}
		principal, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func principalFrom(c *fiber.Ctx) (authz.Principal, error) {
	principal, ok := c.Locals(principalKey).(authz.Principal)
	if !ok {
		return authz.Principal{}, domain.ErrUnauthorized
	}
	return principal, nil
}
