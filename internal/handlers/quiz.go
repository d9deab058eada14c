package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/models"
)

// QuizHandler serves the quiz configuration.
type QuizHandler struct{}

func NewQuizHandler() *QuizHandler {
	return &QuizHandler{}
}

// Steps returns the ordered quiz questions.
func (h *QuizHandler) Steps(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.QuizSteps,
	})
}

// Health reports liveness and the loaded catalog size.
func Health(products func() int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"products": products(),
		})
	}
}
