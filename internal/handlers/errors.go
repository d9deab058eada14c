package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/recommend"
	"github.com/example/scentquiz/internal/session"
	"github.com/example/scentquiz/internal/validation"
)

// ErrorHandler renders every error returned by a handler as
// {"success": false, "error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if details := validation.Details(err); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"details": details,
		})
	}

	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.Is(err, session.ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, recommend.ErrNegativeLimit):
		code = fiber.StatusBadRequest
		message = err.Error()
	}

	if code >= fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// parseBody decodes the JSON body into v and validates it.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validation.Struct(v)
}
