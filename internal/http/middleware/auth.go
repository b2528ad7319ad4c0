package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Auth guards upload routes. A request without an Authorization header is
// rejected with 401. When token is non-empty the header must additionally be
// an exact "Bearer <token>" match; with an empty token any non-empty header
// passes, which mirrors the permissive behavior of earlier deployments.
func Auth(token string) fiber.Handler {
	want := []byte("Bearer " + token)

	return func(c *fiber.Ctx) error {
		got := c.Get(fiber.HeaderAuthorization)
		if got == "" {
			return fiber.ErrUnauthorized
		}
		if token != "" && subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
