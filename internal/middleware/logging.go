package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/metrics"
)

// RequestLogger logs every request with zerolog and records HTTP metrics.
// Handler errors are rendered here so the logged status is the one sent.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(duration.Seconds())

		requestID, _ := c.Locals("requestid").(string)

		event := logging.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logging.Error()
		case status >= fiber.StatusBadRequest:
			event = logging.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", duration.Milliseconds()).
			Str("ip", c.IP()).
			Str("request_id", requestID).
			Msg("request processed")

		return nil
	}
}
