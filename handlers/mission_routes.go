// handlers/mission_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"protocol-wars-engine/middleware"
	"protocol-wars-engine/services"
)

func SetupMissionRoutes(app *fiber.App, missionService *services.MissionService) {
	securedGroup := app.Group("/s", middleware.PlayerContextMiddleware())

	securedGroup.Get("/missions", func(c *fiber.Ctx) error {
		missions := missionService.GetActiveMissions(middleware.PlayerID(c))
		return c.JSON(fiber.Map{
			"missions": missions,
			"count":    len(missions),
		})
	})

	securedGroup.Post("/missions/generate", func(c *fiber.Ctx) error {
		count := 3
		if raw := c.Query("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 10 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "count must be between 1 and 10",
				})
			}
			count = n
		}

		missions, err := missionService.GenerateMissionSet(middleware.PlayerID(c), count)
		if err != nil {
			if errors.Is(err, services.ErrPlayerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to generate missions",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"missions": missions,
			"count":    len(missions),
		})
	})

	securedGroup.Post("/missions/:id/start", func(c *fiber.Ctx) error {
		mission, err := missionService.StartMission(middleware.PlayerID(c), c.Params("id"))
		if err != nil {
			return missionError(c, err, "failed to start mission")
		}
		return c.JSON(mission)
	})

	securedGroup.Post("/missions/:id/complete", func(c *fiber.Ctx) error {
		result, err := missionService.CompleteMission(middleware.PlayerID(c), c.Params("id"))
		if err != nil {
			return missionError(c, err, "failed to complete mission")
		}
		return c.JSON(result)
	})
}

func missionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrMissionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "mission not found",
		})
	case errors.Is(err, services.ErrMissionState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrPlayerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not initialized",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
			"cause": err.Error(),
		})
	}
}
