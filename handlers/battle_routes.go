// handlers/battle_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"protocol-wars-engine/middleware"
	"protocol-wars-engine/services"
)

func SetupBattleRoutes(app *fiber.App, battleService *services.BattleService, protocolService *services.ProtocolService) {
	// The protocol grid is readable without player context.
	app.Get("/protocols", func(c *fiber.Ctx) error {
		protocols, err := protocolService.List(c.Query("type"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list protocols",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"protocols": protocols,
			"count":     len(protocols),
		})
	})

	app.Get("/protocols/:id", func(c *fiber.Ctx) error {
		protocol, err := protocolService.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrProtocolNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "protocol not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load protocol",
				"cause": err.Error(),
			})
		}
		return c.JSON(protocol)
	})

	securedGroup := app.Group("/s", middleware.PlayerContextMiddleware())

	securedGroup.Get("/protocols/owned", func(c *fiber.Ctx) error {
		protocols, err := protocolService.OwnedBy(middleware.PlayerID(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list captured protocols",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"protocols": protocols,
			"count":     len(protocols),
		})
	})

	securedGroup.Get("/battles/odds/:protocolID", func(c *fiber.Ctx) error {
		odds, err := battleService.CalculateOdds(middleware.PlayerID(c), c.Params("protocolID"))
		if err != nil {
			return battleError(c, err, "failed to calculate odds")
		}
		return c.JSON(odds)
	})

	securedGroup.Post("/battles", func(c *fiber.Ctx) error {
		var req struct {
			ProtocolID string `json:"protocol_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.ProtocolID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "protocol_id is required",
			})
		}

		report, err := battleService.ExecuteBattle(middleware.PlayerID(c), req.ProtocolID)
		if err != nil {
			return battleError(c, err, "failed to execute battle")
		}
		return c.JSON(report)
	})

	securedGroup.Get("/battles", func(c *fiber.Ctx) error {
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "limit must be between 1 and 100",
				})
			}
			limit = n
		}

		battles, err := battleService.RecentBattles(middleware.PlayerID(c), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list battles",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"battles": battles,
			"count":   len(battles),
		})
	})
}

func battleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrProtocolNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "protocol not found",
		})
	case errors.Is(err, services.ErrPlayerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not initialized",
		})
	case errors.Is(err, services.ErrBattleIneligible):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
			"cause": err.Error(),
		})
	}
}
