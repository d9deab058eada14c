package recommend

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/example/scentquiz/internal/models"
)

var occasionReasons = map[models.Occasion]string{
	models.OccasionDaily:    "Perfeito para o dia a dia, com uma fragrância que te acompanha em todas as atividades",
	models.OccasionWork:     "Ideal para o ambiente profissional, discreto e elegante",
	models.OccasionSpecial:  "Perfeito para ocasiões especiais, com uma presença marcante",
	models.OccasionRomantic: "Ideal para encontros românticos, com notas sedutoras e envolventes",
	models.OccasionSport:    "Perfeito para atividades físicas, com frescor e energia",
}

var familyReasons = map[models.Family]string{
	models.FamilyFloral:   "Notas florais delicadas que combinam perfeitamente com seu perfil",
	models.FamilyWoody:    "Fragrância amadeirada sofisticada, exatamente como você prefere",
	models.FamilyOriental: "Notas orientais envolventes que realçam sua personalidade",
	models.FamilyCitrus:   "Frescor cítrico energizante, ideal para seu estilo",
	models.FamilyFresh:    "Fragrância fresca e revigorante, perfeita para você",
	models.FamilyFruity:   "Notas frutadas vibrantes que combinam com sua personalidade",
}

var intensityReasons = map[models.Intensity]string{
	models.IntensityLight:    "Intensidade leve e discreta, exatamente como você gosta",
	models.IntensityModerate: "Presença equilibrada, nem muito forte nem muito sutil",
	models.IntensityStrong:   "Fragrância marcante e duradoura, ideal para quem gosta de se destacar",
}

var timeReasons = map[models.TimeOfDay]string{
	models.TimeMorning:   "Perfeito para começar o dia com energia e frescor",
	models.TimeAfternoon: "Ideal para o período da tarde, com notas equilibradas",
	models.TimeEvening:   "Perfeito para a noite, com presença marcante e elegante",
	models.TimeAllDay:    "Versátil para usar o dia todo, com excelente durabilidade",
}

var seasonReasons = map[models.Season]string{
	models.SeasonSpring: "Perfeito para a primavera, com notas florais e frescas",
	models.SeasonSummer: "Ideal para o verão, com frescor e leveza",
	models.SeasonAutumn: "Perfeito para o outono, com notas aconchegantes",
	models.SeasonWinter: "Ideal para o inverno, com presença marcante e envolvente",
	models.SeasonAll:    "Versátil para todas as estações, sempre adequado",
}

var genderReasons = map[models.ProfileGender]string{
	models.ProfileMale:   "Desenvolvido especialmente para homens, com notas masculinas e sofisticadas",
	models.ProfileFemale: "Criado para mulheres, com elegância e feminilidade únicas",
	models.ProfileOther:  "Fragrância versátil que se adapta perfeitamente ao seu estilo",
}

const genderReasonDefault = "Perfeito para seu perfil"

// phrase looks value up in table and falls back to format applied to the
// lowercased raw value.
func phrase[K ~string](table map[K]string, value K, format string) string {
	if s, ok := table[value]; ok {
		return s
	}
	return fmt.Sprintf(format, strings.ToLower(string(value)))
}

// Explain lists up to three sentences describing why a product fits. Reasons
// are collected in a fixed priority order and the first three are kept; when
// nothing matches, three brand-quality sentences are returned instead.
func Explain(p *models.Product, answers models.QuizAnswers, profile models.UserProfile) []string {
	var reasons []string

	if answers.Occasion != "" && slices.Contains(p.Occasions, answers.Occasion) {
		reasons = append(reasons, phrase(occasionReasons, answers.Occasion, "Perfeito para %s"))
	}
	if answers.OlfactoryFamily != "" && p.OlfactoryFamily == answers.OlfactoryFamily {
		reasons = append(reasons, phrase(familyReasons, answers.OlfactoryFamily, "Família olfativa %s como você prefere"))
	}
	if answers.Intensity != "" && p.Intensity == answers.Intensity {
		reasons = append(reasons, phrase(intensityReasons, answers.Intensity, "Intensidade %s ideal para você"))
	}
	if answers.TimeOfDay != "" && slices.Contains(p.TimeOfDay, answers.TimeOfDay) {
		reasons = append(reasons, phrase(timeReasons, answers.TimeOfDay, "Ideal para usar de %s"))
	}
	if answers.Season != "" && slices.Contains(p.Season, answers.Season) {
		reasons = append(reasons, phrase(seasonReasons, answers.Season, "Perfeito para o %s"))
	}
	if common := matchingNotes(p, answers.PreferredNotes); len(common) > 0 {
		if len(common) > 2 {
			common = common[:2]
		}
		reasons = append(reasons, "Contém suas notas favoritas: "+strings.Join(common, ", "))
	}
	if p.Rating >= TopRating {
		reasons = append(reasons, fmt.Sprintf("Excelente avaliação (%s/5) entre nossos clientes", strconv.FormatFloat(p.Rating, 'f', -1, 64)))
	}
	if p.Reviews > PopularReviews {
		reasons = append(reasons, fmt.Sprintf("Muito popular, com %d+ avaliações positivas", p.Reviews))
	}
	if profile.Gender != "" && p.Gender != models.GenderUnisex {
		if s, ok := genderReasons[profile.Gender]; ok {
			reasons = append(reasons, s)
		} else {
			reasons = append(reasons, genderReasonDefault)
		}
	}

	if len(reasons) == 0 {
		return []string{
			"Excelente qualidade da marca " + p.Brand,
			"Produto cuidadosamente selecionado pela nossa equipe",
			"Fragrância de alta qualidade com ótima durabilidade",
		}
	}
	if len(reasons) > maxReasonsShown {
		reasons = reasons[:maxReasonsShown]
	}
	return reasons
}

func fallbackReasons(p *models.Product) []string {
	return []string{
		"Produto popular entre nossos clientes",
		"Excelente qualidade da marca " + p.Brand,
		"Recomendado pela nossa equipe",
	}
}
