package models

// Recommendation is one ranked entry of a quiz result. MatchPercentage depends
// only on the rank; ScorePercentage is the score relative to the best entry of
// the same run.
type Recommendation struct {
	Product            Product  `json:"product"`
	CompatibilityScore float64  `json:"compatibilityScore"`
	Reasons            []string `json:"reasons"`
	MatchPercentage    int      `json:"matchPercentage"`
	ScorePercentage    int      `json:"scorePercentage"`
	Fallback           bool     `json:"fallback"`
}
