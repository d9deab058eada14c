package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/metrics"
	"github.com/example/scentquiz/internal/models"
	"github.com/example/scentquiz/internal/recommend"
)

// RecommendationHandler runs the engine for callers that keep quiz state
// on their side.
type RecommendationHandler struct {
	catalog   *catalog.Catalog
	utmSource string
}

func NewRecommendationHandler(c *catalog.Catalog, utmSource string) *RecommendationHandler {
	return &RecommendationHandler{catalog: c, utmSource: utmSource}
}

type recommendationRequest struct {
	Profile   models.UserProfile `json:"profile"`
	Answers   models.QuizAnswers `json:"answers"`
	Limit     *int               `json:"limit" validate:"omitempty,min=0,max=20"`
	UTMSource string             `json:"utm_source" validate:"omitempty,max=60"`
}

// recommendationItem is a Recommendation plus its tracked storefront link.
type recommendationItem struct {
	models.Recommendation
	TaggedURL string `json:"tagged_url"`
}

// Create ranks the catalog against the submitted profile and answers.
func (h *RecommendationHandler) Create(c *fiber.Ctx) error {
	var req recommendationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	limit := recommend.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if req.Answers.PreferredNotes == nil {
		req.Answers.PreferredNotes = []string{}
	}

	recs, err := recommend.Recommend(h.catalog.Products(), req.Answers, req.Profile, limit)
	if err != nil {
		return err
	}
	recordRecommendations("stateless", recs)

	source := req.UTMSource
	if source == "" {
		source = h.utmSource
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tagRecommendations(recs, source),
	})
}

// tagRecommendations attaches tracked links; an untaggable URL is passed
// through unchanged.
func tagRecommendations(recs []models.Recommendation, source string) []recommendationItem {
	items := make([]recommendationItem, 0, len(recs))
	for _, r := range recs {
		tagged, err := recommend.TagURL(r.Product.ProductURL, source)
		if err != nil {
			logging.Debug().Err(err).Str("product", r.Product.ID).Msg("product url not tagged")
			tagged = r.Product.ProductURL
		}
		items = append(items, recommendationItem{Recommendation: r, TaggedURL: tagged})
	}
	return items
}

func recordRecommendations(source string, recs []models.Recommendation) {
	metrics.RecommendationRuns.WithLabelValues(source).Inc()
	for _, r := range recs {
		kind := "scored"
		if r.Fallback {
			kind = "fallback"
		}
		metrics.RecommendationsServed.WithLabelValues(kind).Inc()
	}
}
