package routes

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/example/scentquiz/internal/handlers"
	"github.com/example/scentquiz/internal/middleware"
)

// NewApp builds the Fiber app with the shared middleware stack.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Scent Quiz API",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	return app
}
