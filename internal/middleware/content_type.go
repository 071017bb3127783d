package middleware

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// RequireContentType rejects body-bearing requests that do not declare the
// expected media type. It runs before any body parsing.
func RequireContentType(mediaType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := c.Get(fiber.HeaderContentType)
		if contentType == "" {
			log.Printf("Content-Type not specified")
			return unsupportedMediaType(c, mediaType)
		}
		if contentType != mediaType {
			log.Printf("Invalid Content-Type: %s", contentType)
			return unsupportedMediaType(c, mediaType)
		}
		return c.Next()
	}
}

func unsupportedMediaType(c *fiber.Ctx, mediaType string) error {
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"status":  fiber.StatusUnsupportedMediaType,
		"message": fmt.Sprintf("Content-Type must be %s", mediaType),
	})
}
