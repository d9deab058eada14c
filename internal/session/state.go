// Package session holds the quiz state machine and its persistence.
package session

import (
	"github.com/example/scentquiz/internal/models"
)

// State is the complete quiz state of one visitor.
type State struct {
	Profile         *models.UserProfile     `json:"profile"`
	Answers         models.QuizAnswers      `json:"answers"`
	CurrentStep     int                     `json:"currentStep"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Completed       bool                    `json:"isCompleted"`
	Started         bool                    `json:"hasStarted"`
}

// Snapshot is the persisted subset of State. Recommendations are recomputed,
// never persisted with it.
type Snapshot struct {
	Profile     *models.UserProfile `json:"userProfile"`
	Answers     models.QuizAnswers  `json:"answers"`
	CurrentStep int                 `json:"currentStep"`
	Completed   bool                `json:"isCompleted"`
	Started     bool                `json:"hasStarted"`
}

// New returns an empty state.
func New() *State {
	return &State{
		Answers:         models.QuizAnswers{PreferredNotes: []string{}},
		Recommendations: []models.Recommendation{},
	}
}

func (s *State) SetProfile(p models.UserProfile) {
	s.Profile = &p
}

// UpdateAnswers merges the fields present in patch.
func (s *State) UpdateAnswers(patch models.AnswersPatch) {
	if patch.Occasion != nil {
		s.Answers.Occasion = *patch.Occasion
	}
	if patch.TimeOfDay != nil {
		s.Answers.TimeOfDay = *patch.TimeOfDay
	}
	if patch.OlfactoryFamily != nil {
		s.Answers.OlfactoryFamily = *patch.OlfactoryFamily
	}
	if patch.Intensity != nil {
		s.Answers.Intensity = *patch.Intensity
	}
	if patch.Season != nil {
		s.Answers.Season = *patch.Season
	}
	if patch.PreferredNotes != nil {
		s.Answers.PreferredNotes = append([]string{}, patch.PreferredNotes...)
	}
	if patch.PreferredNotesText != nil {
		s.Answers.PreferredNotes = models.ParsePreferredNotes(*patch.PreferredNotesText)
	}
}

// SetStep jumps to step, clamped to the valid range.
func (s *State) SetStep(step int) {
	s.CurrentStep = clampStep(step)
}

func (s *State) Next() {
	s.CurrentStep = clampStep(s.CurrentStep + 1)
}

func (s *State) Previous() {
	s.CurrentStep = clampStep(s.CurrentStep - 1)
}

func (s *State) Start() {
	s.Started = true
	s.CurrentStep = 0
}

func (s *State) Complete(recs []models.Recommendation) {
	if recs == nil {
		recs = []models.Recommendation{}
	}
	s.Recommendations = recs
	s.Completed = true
}

// Reset restarts the quiz but keeps the profile.
func (s *State) Reset() {
	profile := s.Profile
	*s = *New()
	s.Profile = profile
}

// Clear drops everything including the profile.
func (s *State) Clear() {
	*s = *New()
}

// CompleteAnswers returns the answers with a non-nil notes list.
func (s *State) CompleteAnswers() models.QuizAnswers {
	a := s.Answers
	if a.PreferredNotes == nil {
		a.PreferredNotes = []string{}
	}
	return a
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Profile:     s.Profile,
		Answers:     s.CompleteAnswers(),
		CurrentStep: s.CurrentStep,
		Completed:   s.Completed,
		Started:     s.Started,
	}
}

// Restore replaces the persisted subset from snap. Recommendations are kept.
func (s *State) Restore(snap Snapshot) {
	s.Profile = snap.Profile
	s.Answers = snap.Answers
	if s.Answers.PreferredNotes == nil {
		s.Answers.PreferredNotes = []string{}
	}
	s.CurrentStep = clampStep(snap.CurrentStep)
	s.Completed = snap.Completed
	s.Started = snap.Started
}

func clampStep(step int) int {
	return max(0, min(step, models.LastStep))
}
