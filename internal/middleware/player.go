package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// PlayerIDKey is the locals key holding the caller's player ID. Websocket
// handlers read the same key from the upgraded connection.
const PlayerIDKey = "playerID"

const maxPlayerIDLength = 64

// EnsurePlayerID takes the player ID from the X-Player-ID header, falling back
// to the playerId query parameter.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(PlayerIDKey) != nil {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query("playerId"))
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if len(playerID) > maxPlayerIDLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player ID is too long",
			})
		}

		// The header and query strings alias the request buffer, which fasthttp
		// reuses. The ID outlives the request as a seat and queue key.
		c.Locals(PlayerIDKey, utils.CopyString(playerID))
		return c.Next()
	}
}
