package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/scentquiz/internal/models"
)

// plainProduct satisfies no criterion for any answers used in these tests.
func plainProduct(id string, price float64) models.Product {
	p := models.Product{
		ID:              id,
		Name:            "Perfume " + id,
		Brand:           "Floryn",
		Price:           price,
		ProductURL:      "https://floryn.com.br/products/" + id,
		OlfactoryFamily: models.FamilySweet,
		Intensity:       models.IntensityLight,
		Gender:          models.GenderUnisex,
		Available:       true,
		Rating:          4.0,
		Reviews:         12,
	}
	p.ApplyDefaults()
	return p
}

func woodyAnswers() models.QuizAnswers {
	return models.QuizAnswers{
		Occasion:        models.OccasionWork,
		TimeOfDay:       models.TimeEvening,
		OlfactoryFamily: models.FamilyWoody,
		Intensity:       models.IntensityStrong,
		Season:          models.SeasonWinter,
	}
}

func ids(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Product.ID
	}
	return out
}

func TestScore_GenderExclusion(t *testing.T) {
	p := plainProduct("m1", 80)
	p.Gender = models.GenderMale

	score := Score(&p, woodyAnswers(), models.UserProfile{Name: "Ana", Gender: models.ProfileFemale})
	assert.True(t, IsExcluded(score))

	recs, err := Recommend([]models.Product{p}, woodyAnswers(), models.UserProfile{Name: "Ana", Gender: models.ProfileFemale}, 3)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestScore_GenderGateOpenProfiles(t *testing.T) {
	p := plainProduct("f1", 80)
	p.Gender = models.GenderFemale

	for _, g := range []models.ProfileGender{"", models.ProfileOther, models.ProfileFemale} {
		score := Score(&p, woodyAnswers(), models.UserProfile{Name: "Ana", Gender: g})
		assert.False(t, IsExcluded(score), "gender %q", g)
	}
}

func TestScore_UnisexAlwaysScored(t *testing.T) {
	p := plainProduct("u1", 80)
	for _, g := range []models.ProfileGender{"", models.ProfileMale, models.ProfileFemale, models.ProfileOther} {
		assert.False(t, IsExcluded(Score(&p, woodyAnswers(), models.UserProfile{Name: "Rui", Gender: g})))
	}
}

func TestScore_WeightAdditivity(t *testing.T) {
	p := plainProduct("p1", 80)
	p.Occasions = []models.Occasion{models.OccasionWork}
	p.Rating = 4.5

	assert.Equal(t, 6.0, Score(&p, woodyAnswers(), models.UserProfile{Name: "Rui"}))
}

func TestScore_AllCriteria(t *testing.T) {
	p := plainProduct("p1", 250)
	p.Occasions = []models.Occasion{models.OccasionDaily, models.OccasionWork}
	p.TimeOfDay = []models.TimeOfDay{models.TimeEvening}
	p.OlfactoryFamily = models.FamilyWoody
	p.Intensity = models.IntensityStrong
	p.Season = []models.Season{models.SeasonAutumn, models.SeasonWinter}
	p.TopNotes = []string{"cedro", "vetiver"}
	p.HeartNotes = []string{"sândalo", "cedro"}
	p.BaseNotes = []string{"âmbar"}
	p.Rating = 4.8

	answers := woodyAnswers()
	answers.PreferredNotes = []string{"Cedro"}

	// 4 + 3 + 5 + 4 + 3 + 2*2 (cedro twice) + 1 + 2
	assert.Equal(t, 26.0, Score(&p, answers, models.UserProfile{Name: "Rui"}))
}

func TestScore_EmptyAnswersContributeNothing(t *testing.T) {
	p := plainProduct("p1", 80)
	p.Occasions = []models.Occasion{models.OccasionWork}
	p.OlfactoryFamily = models.FamilyWoody

	assert.Equal(t, 0.0, Score(&p, models.QuizAnswers{}, models.UserProfile{Name: "Rui"}))
}

func TestScore_NoteOverlapCaseInsensitive(t *testing.T) {
	p := plainProduct("p1", 80)
	p.TopNotes = []string{"Bergamota"}

	answers := models.QuizAnswers{PreferredNotes: []string{"bergamota"}}
	assert.Equal(t, float64(WeightNoteOverlap), Score(&p, answers, models.UserProfile{Name: "Rui"}))
}

func TestScore_NoteOverlapBidirectional(t *testing.T) {
	p := plainProduct("p1", 80)
	p.HeartNotes = []string{"rosa"}
	p.BaseNotes = []string{"baunilha de madagascar"}

	answers := models.QuizAnswers{PreferredNotes: []string{"Rosa Damascena", "baunilha", "  "}}
	assert.Equal(t, float64(2*WeightNoteOverlap), Score(&p, answers, models.UserProfile{Name: "Rui"}))
}

func TestRecommend_RankingStableOnTies(t *testing.T) {
	a := plainProduct("a", 80)
	b := plainProduct("b", 90)
	c := plainProduct("c", 70)
	for _, p := range []*models.Product{&a, &b, &c} {
		p.OlfactoryFamily = models.FamilyWoody
	}
	b.Occasions = []models.Occasion{models.OccasionWork}

	recs, err := Recommend([]models.Product{a, b, c}, woodyAnswers(), models.UserProfile{Name: "Rui"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(recs))
}

func TestRecommend_ZeroScoresKeepCatalogOrder(t *testing.T) {
	catalog := []models.Product{plainProduct("a", 10), plainProduct("b", 50), plainProduct("c", 30)}
	for i := range catalog {
		require.Equal(t, 0.0, Score(&catalog[i], woodyAnswers(), models.UserProfile{Name: "Rui"}))
	}

	recs, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, []string{"a", "b", "c"}, ids(recs))
	for i, r := range recs {
		assert.False(t, r.Fallback)
		assert.Equal(t, 0.0, r.CompatibilityScore)
		assert.Equal(t, Explain(&catalog[i], woodyAnswers(), models.UserProfile{Name: "Rui"}), r.Reasons)
	}
}

func TestRecommend_ScoredBeforeUnmatched(t *testing.T) {
	m1 := plainProduct("match-1", 60)
	m1.OlfactoryFamily = models.FamilyWoody
	m2 := plainProduct("match-2", 50)
	m2.Occasions = []models.Occasion{models.OccasionWork}

	catalog := []models.Product{
		plainProduct("cheap", 20),
		m1,
		plainProduct("pricey", 95),
		plainProduct("mid", 40),
		m2,
		plainProduct("mid-2", 40),
	}

	recs, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, 5)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	assert.Equal(t, []string{"match-1", "match-2", "cheap", "pricey", "mid"}, ids(recs))
	for _, r := range recs {
		assert.False(t, r.Fallback)
	}
	assert.Equal(t, 100, recs[0].ScorePercentage)
	assert.Equal(t, 80, recs[1].ScorePercentage)
	assert.Equal(t, 65, recs[4].ScorePercentage)
}

func TestRecommend_ShortPool(t *testing.T) {
	male := plainProduct("male", 500)
	male.Gender = models.GenderMale
	gone := plainProduct("gone", 400)
	gone.Available = false
	match := plainProduct("match", 30)
	match.OlfactoryFamily = models.FamilyWoody

	catalog := []models.Product{male, plainProduct("ok", 10), gone, match}
	recs, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Ana", Gender: models.ProfileFemale}, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"match", "ok"}, ids(recs))
	assert.Equal(t, []int{95, 89}, []int{recs[0].MatchPercentage, recs[1].MatchPercentage})
}

func TestBackfill(t *testing.T) {
	products := []models.Product{
		plainProduct("cheap", 20),
		plainProduct("taken", 300),
		plainProduct("pricey", 95),
		plainProduct("mid", 40),
		plainProduct("mid-2", 40),
	}
	pool := make([]*models.Product, len(products))
	for i := range products {
		pool[i] = &products[i]
	}
	selected := []models.Recommendation{{Product: products[1]}}

	out := backfill(pool, selected, 3)
	assert.Equal(t, []string{"pricey", "mid", "mid-2"}, ids(out))
	for _, r := range out {
		assert.True(t, r.Fallback)
		assert.Equal(t, 1.0, r.CompatibilityScore)
		assert.Equal(t, "Produto popular entre nossos clientes", r.Reasons[0])
	}

	assert.Len(t, backfill(pool, selected, 10), 4)
}

func TestRecommend_BackfillNeverAddsExcluded(t *testing.T) {
	male := plainProduct("male", 500)
	male.Gender = models.GenderMale
	gone := plainProduct("gone", 400)
	gone.Available = false

	recs, err := Recommend([]models.Product{male, gone, plainProduct("ok", 10)}, woodyAnswers(),
		models.UserProfile{Name: "Ana", Gender: models.ProfileFemale}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids(recs))
}

func TestRecommend_PercentageTable(t *testing.T) {
	catalog := make([]models.Product, 0, 3)
	for i, id := range []string{"x", "y", "z"} {
		p := plainProduct(id, 80)
		p.OlfactoryFamily = models.FamilyWoody
		p.Reviews = 10 * (i + 1)
		if i == 0 {
			p.Rating = 5
			p.Occasions = []models.Occasion{models.OccasionWork}
		}
		catalog = append(catalog, p)
	}

	recs, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, 3)
	require.NoError(t, err)

	got := []int{recs[0].MatchPercentage, recs[1].MatchPercentage, recs[2].MatchPercentage}
	assert.Equal(t, []int{95, 89, 82}, got)
}

func TestRecommend_EmptyAnswersKeepCatalogOrder(t *testing.T) {
	catalog := []models.Product{plainProduct("a", 10), plainProduct("b", 20), plainProduct("c", 30), plainProduct("d", 40)}

	recs, err := Recommend(catalog, models.QuizAnswers{}, models.UserProfile{Name: "Rui"}, 4)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(recs))
	assert.Equal(t, 95, recs[0].MatchPercentage)
	assert.Equal(t, 76, recs[3].MatchPercentage)
	assert.Equal(t, 65, recs[0].ScorePercentage)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	recs, err := Recommend(nil, woodyAnswers(), models.UserProfile{Name: "Rui"}, 3)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_LimitBounds(t *testing.T) {
	catalog := []models.Product{plainProduct("a", 10)}

	_, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, -1)
	assert.ErrorIs(t, err, ErrNegativeLimit)

	recs, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_Idempotent(t *testing.T) {
	catalog := []models.Product{plainProduct("a", 10), plainProduct("b", 200), plainProduct("c", 30)}
	catalog[2].OlfactoryFamily = models.FamilyWoody

	first, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, 3)
	require.NoError(t, err)
	second, err := Recommend(catalog, woodyAnswers(), models.UserProfile{Name: "Rui"}, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPositionPercentage(t *testing.T) {
	tests := map[int]int{0: 95, 1: 89, 2: 82, 3: 76, 4: 73, 10: 55, 40: 0}
	for pos, want := range tests {
		assert.Equal(t, want, PositionPercentage(pos), "position %d", pos)
	}
}

func TestCompatibilityPercentage(t *testing.T) {
	assert.Equal(t, 65, CompatibilityPercentage(0, 10))
	assert.Equal(t, 65, CompatibilityPercentage(3, 10))
	assert.Equal(t, 80, CompatibilityPercentage(8, 10))
	assert.Equal(t, 100, CompatibilityPercentage(25, 10))
	assert.Equal(t, 90, CompatibilityPercentage(9, 0))
}
