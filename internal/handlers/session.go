package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/models"
	"github.com/example/scentquiz/internal/recommend"
	"github.com/example/scentquiz/internal/session"
	"github.com/example/scentquiz/internal/validation"
)

// SessionHandler drives server-side quiz sessions.
type SessionHandler struct {
	store     session.Store
	catalog   *catalog.Catalog
	utmSource string
}

func NewSessionHandler(store session.Store, c *catalog.Catalog, utmSource string) *SessionHandler {
	return &SessionHandler{store: store, catalog: c, utmSource: utmSource}
}

type sessionView struct {
	ID              uuid.UUID            `json:"id"`
	Profile         *models.UserProfile  `json:"profile"`
	Answers         models.QuizAnswers   `json:"answers"`
	CurrentStep     int                  `json:"currentStep"`
	Step            models.QuizStep      `json:"step"`
	TotalSteps      int                  `json:"totalSteps"`
	Started         bool                 `json:"hasStarted"`
	Completed       bool                 `json:"isCompleted"`
	Recommendations []recommendationItem `json:"recommendations"`
}

func (h *SessionHandler) view(id uuid.UUID, s *session.State) sessionView {
	return sessionView{
		ID:              id,
		Profile:         s.Profile,
		Answers:         s.CompleteAnswers(),
		CurrentStep:     s.CurrentStep,
		Step:            models.QuizSteps[s.CurrentStep],
		TotalSteps:      len(models.QuizSteps),
		Started:         s.Started,
		Completed:       s.Completed,
		Recommendations: tagRecommendations(s.Recommendations, h.utmSource),
	}
}

func (h *SessionHandler) respond(c *fiber.Ctx, status int, id uuid.UUID, s *session.State) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    h.view(id, s),
	})
}

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

type createSessionRequest struct {
	Profile *models.UserProfile `json:"profile"`
}

// Create starts a new session, optionally with a profile.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	s := session.New()
	if req.Profile != nil {
		s.SetProfile(*req.Profile)
	}

	id, err := h.store.Create(c.UserContext(), s)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusCreated, id, s)
}

// Get returns the current session state.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	s, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, id, s)
}

// Delete removes the session.
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// mutate loads the session, applies fn and saves the result.
func (h *SessionHandler) mutate(c *fiber.Ctx, fn func(s *session.State) error) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	s, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := h.store.Save(c.UserContext(), id, s); err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, id, s)
}

// SetProfile stores the visitor profile.
func (h *SessionHandler) SetProfile(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := parseBody(c, &profile); err != nil {
		return err
	}
	profile.Name = strings.TrimSpace(profile.Name)
	return h.mutate(c, func(s *session.State) error {
		s.SetProfile(profile)
		return nil
	})
}

// UpdateAnswers merges a partial answer update.
func (h *SessionHandler) UpdateAnswers(c *fiber.Ctx) error {
	var patch models.AnswersPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	return h.mutate(c, func(s *session.State) error {
		s.UpdateAnswers(patch)
		return nil
	})
}

func (h *SessionHandler) Start(c *fiber.Ctx) error {
	return h.mutate(c, func(s *session.State) error {
		if s.Profile == nil {
			return fiber.NewError(fiber.StatusConflict, "profile is required before starting the quiz")
		}
		s.Start()
		return nil
	})
}

func (h *SessionHandler) Next(c *fiber.Ctx) error {
	return h.mutate(c, func(s *session.State) error {
		s.Next()
		return nil
	})
}

func (h *SessionHandler) Previous(c *fiber.Ctx) error {
	return h.mutate(c, func(s *session.State) error {
		s.Previous()
		return nil
	})
}

// Reset restarts the quiz keeping the profile.
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	return h.mutate(c, func(s *session.State) error {
		s.Reset()
		return nil
	})
}

// Clear drops the profile and all answers.
func (h *SessionHandler) Clear(c *fiber.Ctx) error {
	return h.mutate(c, func(s *session.State) error {
		s.Clear()
		return nil
	})
}

// Complete runs the engine on the session answers and stores the result.
func (h *SessionHandler) Complete(c *fiber.Ctx) error {
	return h.mutate(c, func(s *session.State) error {
		if s.Profile == nil {
			return fiber.NewError(fiber.StatusConflict, "profile is required to complete the quiz")
		}
		if err := validation.Struct(s.Profile); err != nil {
			return err
		}
		products := h.catalog.Products()
		if len(products) == 0 {
			return fiber.NewError(fiber.StatusServiceUnavailable, "catalog is not available")
		}

		recs, err := recommend.Recommend(products, s.CompleteAnswers(), *s.Profile, recommend.DefaultLimit)
		if err != nil {
			return err
		}
		recordRecommendations("session", recs)
		s.Complete(recs)

		logging.Info().
			Int("recommendations", len(recs)).
			Str("family", string(s.Answers.OlfactoryFamily)).
			Msg("quiz completed")
		return nil
	})
}
