package recommend

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/example/scentquiz/internal/models"
)

// DefaultLimit is the number of recommendations a completed quiz shows.
const DefaultLimit = 3

// ErrNegativeLimit is returned by Recommend for a limit below zero.
var ErrNegativeLimit = errors.New("recommendation limit must not be negative")

var positionPercentages = [...]int{95, 89, 82}

// PositionPercentage is the match percentage displayed for rank i (0-based).
// It depends only on the position, never on the score.
func PositionPercentage(i int) int {
	if i >= 0 && i < len(positionPercentages) {
		return positionPercentages[i]
	}
	return max(0, 85-3*i)
}

// Recommend ranks the available, gender-compatible products and returns at
// most limit entries, best score first and catalog order on ties. Products
// matching nothing stay in the ranking with score 0. Slots left over are
// backfilled with the most expensive unselected pool products, marked as
// fallback.
func Recommend(products []models.Product, answers models.QuizAnswers, profile models.UserProfile, limit int) ([]models.Recommendation, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}

	pool := make([]*models.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.Available && genderAllowed(p, profile) {
			pool = append(pool, p)
		}
	}

	recs := make([]models.Recommendation, 0, min(limit, len(pool)))
	for _, p := range pool {
		score := Score(p, answers, profile)
		if IsExcluded(score) {
			continue
		}
		recs = append(recs, models.Recommendation{
			Product:            *p,
			CompatibilityScore: score,
			Reasons:            Explain(p, answers, profile),
		})
	}

	slices.SortStableFunc(recs, func(a, b models.Recommendation) int {
		return cmp.Compare(b.CompatibilityScore, a.CompatibilityScore)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	if len(recs) < limit {
		recs = append(recs, backfill(pool, recs, limit-len(recs))...)
	}

	best := 0.0
	if len(recs) > 0 {
		best = recs[0].CompatibilityScore
	}
	for i := range recs {
		recs[i].MatchPercentage = PositionPercentage(i)
		recs[i].ScorePercentage = CompatibilityPercentage(recs[i].CompatibilityScore, best)
	}
	return recs, nil
}

// backfill picks up to n products from pool that are not already selected,
// most expensive first.
func backfill(pool []*models.Product, selected []models.Recommendation, n int) []models.Recommendation {
	taken := make(map[string]struct{}, len(selected))
	for _, r := range selected {
		taken[r.Product.ID] = struct{}{}
	}

	candidates := make([]*models.Product, 0, len(pool))
	for _, p := range pool {
		if _, ok := taken[p.ID]; !ok {
			candidates = append(candidates, p)
		}
	}
	slices.SortStableFunc(candidates, func(a, b *models.Product) int {
		return cmp.Compare(b.Price, a.Price)
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]models.Recommendation, 0, len(candidates))
	for _, p := range candidates {
		out = append(out, models.Recommendation{
			Product:            *p,
			CompatibilityScore: fallbackScore,
			Reasons:            fallbackReasons(p),
			Fallback:           true,
		})
	}
	return out
}

// CompatibilityPercentage converts a raw score into a 65-100 figure relative
// to maxScore (10 when maxScore is not positive).
func CompatibilityPercentage(score, maxScore float64) int {
	if maxScore <= 0 {
		maxScore = 10
	}
	if score <= 0 {
		return 65
	}
	pct := min(100, max(65, score/maxScore*100))
	return int(math.Round(pct))
}
