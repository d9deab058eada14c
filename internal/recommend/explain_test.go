package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/scentquiz/internal/models"
)

func TestExplain_GenericWhenNothingMatches(t *testing.T) {
	p := plainProduct("p1", 80)

	reasons := Explain(&p, woodyAnswers(), models.UserProfile{Name: "Rui"})
	assert.Equal(t, []string{
		"Excelente qualidade da marca Floryn",
		"Produto cuidadosamente selecionado pela nossa equipe",
		"Fragrância de alta qualidade com ótima durabilidade",
	}, reasons)
}

func TestExplain_PriorityOrderAndCap(t *testing.T) {
	p := plainProduct("p1", 80)
	p.Occasions = []models.Occasion{models.OccasionWork}
	p.TimeOfDay = []models.TimeOfDay{models.TimeEvening}
	p.OlfactoryFamily = models.FamilyWoody
	p.Intensity = models.IntensityStrong
	p.Season = []models.Season{models.SeasonWinter}
	p.Rating = 4.9
	p.Reviews = 300

	reasons := Explain(&p, woodyAnswers(), models.UserProfile{Name: "Rui"})
	assert.Equal(t, []string{
		"Ideal para o ambiente profissional, discreto e elegante",
		"Fragrância amadeirada sofisticada, exatamente como você prefere",
		"Fragrância marcante e duradoura, ideal para quem gosta de se destacar",
	}, reasons)
}

func TestExplain_UnknownValuesUseTemplate(t *testing.T) {
	p := plainProduct("p1", 80)
	p.Occasions = []models.Occasion{models.OccasionEvening}
	p.OlfactoryFamily = models.FamilySweet

	answers := models.QuizAnswers{Occasion: models.OccasionEvening, OlfactoryFamily: models.FamilySweet}
	reasons := Explain(&p, answers, models.UserProfile{Name: "Rui"})
	assert.Equal(t, []string{
		"Perfeito para evening",
		"Família olfativa sweet como você prefere",
	}, reasons)
}

func TestExplain_NotesRatingReviewsAndGender(t *testing.T) {
	p := plainProduct("p1", 80)
	p.TopNotes = []string{"Bergamota", "Limão"}
	p.HeartNotes = []string{"Rosa"}
	p.Gender = models.GenderFemale
	p.Rating = 4.5
	p.Reviews = 150

	answers := models.QuizAnswers{PreferredNotes: []string{"bergamota", "limão", "rosa"}}
	reasons := Explain(&p, answers, models.UserProfile{Name: "Ana", Gender: models.ProfileFemale})
	assert.Equal(t, []string{
		"Contém suas notas favoritas: Bergamota, Limão",
		"Excelente avaliação (4.5/5) entre nossos clientes",
		"Muito popular, com 150+ avaliações positivas",
	}, reasons)

	p.Rating = 4
	p.Reviews = 20
	reasons = Explain(&p, models.QuizAnswers{}, models.UserProfile{Name: "Ana", Gender: models.ProfileFemale})
	assert.Equal(t, []string{"Criado para mulheres, com elegância e feminilidade únicas"}, reasons)
}

func TestExplain_NeverMoreThanThree(t *testing.T) {
	p := plainProduct("p1", 500)
	p.Occasions = []models.Occasion{models.OccasionWork}
	p.OlfactoryFamily = models.FamilyWoody
	p.Intensity = models.IntensityStrong
	p.Season = []models.Season{models.SeasonWinter}
	p.TimeOfDay = []models.TimeOfDay{models.TimeEvening}
	p.Gender = models.GenderMale
	p.Rating = 5
	p.Reviews = 999

	assert.Len(t, Explain(&p, woodyAnswers(), models.UserProfile{Name: "Rui", Gender: models.ProfileMale}), 3)
}
