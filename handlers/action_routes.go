// handlers/action_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"protocol-wars-engine/middleware"
	"protocol-wars-engine/services"
)

func SetupActionRoutes(app *fiber.App, actionService *services.ActionService, abilityService *services.AbilityService, notificationService *services.NotificationService) {
	securedGroup := app.Group("/s", middleware.PlayerContextMiddleware())

	securedGroup.Get("/actions", func(c *fiber.Ctx) error {
		states, energy, err := actionService.ActionStates(middleware.PlayerID(c))
		if err != nil {
			if errors.Is(err, services.ErrPlayerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list actions",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"actions": states,
			"energy":  energy,
		})
	})

	securedGroup.Post("/actions/:id", func(c *fiber.Ctx) error {
		var req struct {
			TargetProtocolID string `json:"target_protocol_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.TargetProtocolID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "target_protocol_id is required",
			})
		}

		result, err := actionService.PerformAction(middleware.PlayerID(c), c.Params("id"), req.TargetProtocolID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownAction):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "unknown action",
				})
			case errors.Is(err, services.ErrProtocolNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "protocol not found",
				})
			case errors.Is(err, services.ErrPlayerNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			case errors.Is(err, services.ErrActionUnavailable):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": err.Error(),
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to perform action",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(result)
	})

	securedGroup.Get("/abilities", func(c *fiber.Ctx) error {
		states, err := abilityService.AbilityStates(middleware.PlayerID(c))
		if err != nil {
			if errors.Is(err, services.ErrPlayerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list abilities",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"abilities": states,
			"count":     len(states),
		})
	})

	securedGroup.Post("/abilities/:id", func(c *fiber.Ctx) error {
		result, err := abilityService.UseAbility(middleware.PlayerID(c), c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownAbility):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "unknown ability",
				})
			case errors.Is(err, services.ErrPlayerNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			case errors.Is(err, services.ErrAbilityLocked):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": err.Error(),
				})
			case errors.Is(err, services.ErrAbilityUnavailable):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": err.Error(),
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to use ability",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(result)
	})

	securedGroup.Get("/notifications", func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "limit must be a positive integer",
				})
			}
			limit = n
		}

		notes, err := notificationService.List(middleware.PlayerID(c), c.QueryBool("unviewed"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list notifications",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"notifications": notes,
			"count":         len(notes),
		})
	})

	securedGroup.Patch("/notifications/viewed", func(c *fiber.Ctx) error {
		updated, err := notificationService.MarkAllViewed(middleware.PlayerID(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notifications viewed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"updated": updated})
	})

	securedGroup.Patch("/notifications/:id/viewed", func(c *fiber.Ctx) error {
		err := notificationService.MarkViewed(middleware.PlayerID(c), c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotificationNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "notification not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notification viewed",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
