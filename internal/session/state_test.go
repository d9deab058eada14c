package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/scentquiz/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestState_Navigation(t *testing.T) {
	s := New()
	s.Previous()
	assert.Equal(t, 0, s.CurrentStep)

	for range 10 {
		s.Next()
	}
	assert.Equal(t, models.LastStep, s.CurrentStep)

	s.SetStep(-4)
	assert.Equal(t, 0, s.CurrentStep)
	s.SetStep(2)
	assert.Equal(t, 2, s.CurrentStep)

	s.Start()
	assert.True(t, s.Started)
	assert.Equal(t, 0, s.CurrentStep)
}

func TestState_UpdateAnswersMergesPresentFields(t *testing.T) {
	s := New()
	s.UpdateAnswers(models.AnswersPatch{Occasion: ptr(models.OccasionWork)})
	s.UpdateAnswers(models.AnswersPatch{Intensity: ptr(models.IntensityLight)})

	assert.Equal(t, models.OccasionWork, s.Answers.Occasion)
	assert.Equal(t, models.IntensityLight, s.Answers.Intensity)
	assert.Empty(t, s.Answers.Season)

	s.UpdateAnswers(models.AnswersPatch{PreferredNotesText: ptr(" rosa, ,baunilha ")})
	assert.Equal(t, []string{"rosa", "baunilha"}, s.Answers.PreferredNotes)

	s.UpdateAnswers(models.AnswersPatch{PreferredNotes: []string{"oud"}})
	assert.Equal(t, []string{"oud"}, s.Answers.PreferredNotes)
	assert.Equal(t, models.OccasionWork, s.Answers.Occasion)
}

func TestState_ResetKeepsProfile(t *testing.T) {
	s := New()
	s.SetProfile(models.UserProfile{Name: "Ana"})
	s.Start()
	s.UpdateAnswers(models.AnswersPatch{Season: ptr(models.SeasonWinter)})
	s.Next()
	s.Complete([]models.Recommendation{{Product: models.Product{ID: "p1"}}})

	s.Reset()

	if assert.NotNil(t, s.Profile) {
		assert.Equal(t, "Ana", s.Profile.Name)
	}
	assert.Empty(t, s.Answers.Season)
	assert.Equal(t, 0, s.CurrentStep)
	assert.Empty(t, s.Recommendations)
	assert.False(t, s.Completed)
	assert.False(t, s.Started)

	s.Clear()
	assert.Nil(t, s.Profile)
}

func TestState_SnapshotRestore(t *testing.T) {
	s := New()
	s.SetProfile(models.UserProfile{Name: "Ana", Gender: models.ProfileFemale})
	s.Start()
	s.Next()
	s.UpdateAnswers(models.AnswersPatch{OlfactoryFamily: ptr(models.FamilyWoody)})
	s.Complete([]models.Recommendation{{Product: models.Product{ID: "p1"}}})

	restored := New()
	restored.Restore(s.Snapshot())

	assert.Equal(t, s.Profile, restored.Profile)
	assert.Equal(t, models.FamilyWoody, restored.Answers.OlfactoryFamily)
	assert.Equal(t, 1, restored.CurrentStep)
	assert.True(t, restored.Completed)
	assert.True(t, restored.Started)
	assert.Empty(t, restored.Recommendations)
}

func TestState_CompleteAnswersNeverNilNotes(t *testing.T) {
	s := &State{}
	assert.NotNil(t, s.CompleteAnswers().PreferredNotes)

	s.Complete(nil)
	assert.NotNil(t, s.Recommendations)
	assert.True(t, s.Completed)
}
