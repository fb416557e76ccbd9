package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lead-insights/backend/internal/http/dto"
	"github.com/lead-insights/backend/internal/middleware"
	"github.com/lead-insights/backend/internal/services"
)

// serviceError maps service sentinel errors onto HTTP statuses. Anything
// unclassified is a 500 with a generic body.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
		message = services.Message(err)
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		message = services.Message(err)
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
		message = services.Message(err)
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(c),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(c),
	})
}
