package common

import (
	"github.com/gofiber/fiber/v2"
)

// JSON sends a success response with data
func JSON(c *fiber.Ctx, data any) error {
	return c.JSON(Response{Success: true, Data: data})
}

// JSONMessage sends a success response with message
func JSONMessage(c *fiber.Ctx, message string) error {
	return c.JSON(Response{Success: true, Message: message})
}

// JSONError sends an error response
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// JSONValidation sends field-scoped validation messages with 422.
func JSONValidation(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Response{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}
