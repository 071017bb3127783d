package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealthCheck reports that the service is up. It has no side effects
// and no failure modes.
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "OK",
	})
}
