// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PlayerContextMiddleware extracts the player identity set by Gateway.
// It is applied only to routes under /s/ — but for safety, we guard.
func PlayerContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID := c.Get("X-Player-ID")

		// Enforce player context on secured paths (i.e., /s/)
		path := c.Path()
		isSecured := strings.HasPrefix(path, "/s/")
		if isSecured && playerID == "" {
			log.Printf("❌ [PLAYER_CTX] X-Player-ID required but missing on secured route: %s", path)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Player-ID — request must come through gateway with auth context",
			})
		}

		// Attach to ctx for handlers
		c.Locals("player_id", playerID)

		return c.Next()
	}
}

// PlayerID returns the player identity attached by PlayerContextMiddleware.
func PlayerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("player_id").(string); ok {
		return id
	}
	return ""
}
