// handlers/player_routes.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"protocol-wars-engine/middleware"
	"protocol-wars-engine/services"
)

func SetupPlayerRoutes(app *fiber.App, traitService *services.TraitService, streakService *services.StreakService) {
	// Initialization comes straight from the gateway with the player identity
	// in the body; everything else rides on the /s/ player context.
	app.Post("/players/initialize", func(c *fiber.Ctx) error {
		var req struct {
			PlayerID string `json:"player_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.PlayerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player_id is required",
			})
		}

		profile, err := traitService.InitializePlayer(req.PlayerID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to initialize player",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"profile": profile,
			"traits":  profile.Traits(),
			"level":   services.PlayerLevel(profile.Traits()),
		})
	})

	securedGroup := app.Group("/s", middleware.PlayerContextMiddleware())

	securedGroup.Get("/player", func(c *fiber.Ctx) error {
		playerID := middleware.PlayerID(c)

		profile, err := traitService.GetProfile(playerID)
		if err != nil {
			if errors.Is(err, services.ErrPlayerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load player",
				"cause": err.Error(),
			})
		}

		traits := profile.Traits()
		return c.JSON(fiber.Map{
			"profile": profile,
			"traits":  traits,
			"tvl":     services.ComputeTVL(traits),
			"level":   services.PlayerLevel(traits),
			"streak":  streakService.GetStreak(playerID),
		})
	})

	securedGroup.Patch("/player/traits/:trait", func(c *fiber.Ctx) error {
		playerID := middleware.PlayerID(c)
		trait := c.Params("trait")

		var req struct {
			Value int `json:"value"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		profile, err := traitService.UpdateTrait(playerID, trait, req.Value)
		if err != nil {
			if errors.Is(err, services.ErrPlayerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not initialized",
				})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"profile": profile,
			"traits":  profile.Traits(),
			"tvl":     profile.TVL,
			"level":   services.PlayerLevel(profile.Traits()),
		})
	})

	securedGroup.Get("/streak", func(c *fiber.Ctx) error {
		return c.JSON(streakService.GetStreak(middleware.PlayerID(c)))
	})

	securedGroup.Post("/streak/activity", func(c *fiber.Ctx) error {
		state, err := streakService.UpdateStreak(middleware.PlayerID(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update streak",
				"cause": err.Error(),
			})
		}
		return c.JSON(state)
	})
}
