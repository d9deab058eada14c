package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/metrics"
)

// knownEvents bounds the metric label set; anything else counts as "other".
var knownEvents = map[string]bool{
	"page_view":          true,
	"profile_completed":  true,
	"quiz_start_attempt": true,
	"quiz_started":       true,
	"quiz_answer":        true,
	"quiz_completed":     true,
	"cta_clicked":        true,
	"quiz_retake":        true,
	"profile_cleared":    true,
}

// EventHandler accepts analytics events from the quiz front end.
type EventHandler struct{}

func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

type eventRequest struct {
	Name       string                 `json:"name" validate:"notblank,max=64"`
	SessionID  string                 `json:"session_id" validate:"omitempty,uuid"`
	Properties map[string]interface{} `json:"properties" validate:"omitempty,max=32"`
}

// Track records one event.
func (h *EventHandler) Track(c *fiber.Ctx) error {
	var req eventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	label := req.Name
	if !knownEvents[label] {
		label = "other"
	}
	metrics.QuizEvents.WithLabelValues(label).Inc()

	l := logging.With("events")
	l.Info().
		Str("event", req.Name).
		Str("session_id", req.SessionID).
		Interface("properties", req.Properties).
		Msg("quiz event")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"success": true})
}
