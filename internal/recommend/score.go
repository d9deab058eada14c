// Package recommend ranks catalog products against quiz answers and a user
// profile. Everything here is a pure function over in-memory data: no I/O,
// no shared state, and the same inputs always produce the same ranking.
package recommend

import (
	"math"
	"slices"
	"strings"

	"github.com/example/scentquiz/internal/models"
)

// Scoring weights per satisfied criterion.
const (
	WeightOccasion        = 4
	WeightTimeOfDay       = 3
	WeightOlfactoryFamily = 5
	WeightIntensity       = 4
	WeightSeason          = 3
	WeightNoteOverlap     = 2
	WeightPrice           = 1
	WeightRating          = 2
)

// Thresholds for the price and rating tiers.
const (
	PremiumPrice    = 100.0
	TopRating       = 4.5
	PopularReviews  = 100
	fallbackScore   = 1.0
	maxReasonsShown = 3
)

// IsExcluded reports whether score is the gender exclusion sentinel.
func IsExcluded(score float64) bool {
	return math.IsInf(score, -1)
}

// Score computes the compatibility of a product with the answers. Products the
// profile's gender excludes score negative infinity (see IsExcluded).
func Score(p *models.Product, answers models.QuizAnswers, profile models.UserProfile) float64 {
	if !genderAllowed(p, profile) {
		return math.Inf(-1)
	}

	score := 0.0
	if answers.Occasion != "" && slices.Contains(p.Occasions, answers.Occasion) {
		score += WeightOccasion
	}
	if answers.TimeOfDay != "" && slices.Contains(p.TimeOfDay, answers.TimeOfDay) {
		score += WeightTimeOfDay
	}
	if answers.OlfactoryFamily != "" && p.OlfactoryFamily == answers.OlfactoryFamily {
		score += WeightOlfactoryFamily
	}
	if answers.Intensity != "" && p.Intensity == answers.Intensity {
		score += WeightIntensity
	}
	if answers.Season != "" && slices.Contains(p.Season, answers.Season) {
		score += WeightSeason
	}

	score += float64(len(matchingNotes(p, answers.PreferredNotes)) * WeightNoteOverlap)

	if p.Price > PremiumPrice {
		score += WeightPrice
	}
	if p.Rating >= TopRating {
		score += WeightRating
	}
	return score
}

// genderAllowed is false only when both the product and the profile carry a
// gender and they differ. "other" and an empty profile gender see everything.
func genderAllowed(p *models.Product, profile models.UserProfile) bool {
	if p.Gender == models.GenderUnisex {
		return true
	}
	want, restricted := profile.Gender.ProductGender()
	if !restricted {
		return true
	}
	return p.Gender == want
}

// matchingNotes returns the product notes (top, heart, base, duplicates kept)
// that contain, or are contained in, any preferred note, ignoring case.
func matchingNotes(p *models.Product, preferred []string) []string {
	prefs := make([]string, 0, len(preferred))
	for _, note := range preferred {
		if n := strings.ToLower(strings.TrimSpace(note)); n != "" {
			prefs = append(prefs, n)
		}
	}
	if len(prefs) == 0 {
		return nil
	}

	var matches []string
	for _, note := range p.AllNotes() {
		n := strings.ToLower(strings.TrimSpace(note))
		if n == "" {
			continue
		}
		for _, pref := range prefs {
			if strings.Contains(n, pref) || strings.Contains(pref, n) {
				matches = append(matches, note)
				break
			}
		}
	}
	return matches
}
