package models

import "strings"

// Occasion, TimeOfDay, Family, Intensity and Season are the quiz option values
// shared by answers and catalog tags.
type (
	Occasion  string
	TimeOfDay string
	Family    string
	Intensity string
	Season    string
)

const (
	OccasionDaily    Occasion = "daily"
	OccasionWork     Occasion = "work"
	OccasionEvening  Occasion = "evening"
	OccasionSpecial  Occasion = "special"
	OccasionRomantic Occasion = "romantic"
	OccasionSport    Occasion = "sport"
)

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeAllDay    TimeOfDay = "all-day"
)

const (
	FamilyFloral   Family = "floral"
	FamilyCitrus   Family = "citrus"
	FamilyWoody    Family = "woody"
	FamilyOriental Family = "oriental"
	FamilyFresh    Family = "fresh"
	FamilySweet    Family = "sweet"
	FamilyFruity   Family = "fruity"
)

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityStrong   Intensity = "strong"
)

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
	SeasonAll    Season = "all-seasons"
)

// ProfileGender is the gender a user picks for their profile.
type ProfileGender string

const (
	ProfileMale   ProfileGender = "male"
	ProfileFemale ProfileGender = "female"
	ProfileOther  ProfileGender = "other"
)

// ProductGender maps a profile gender onto the catalog alphabet. The second
// result is false when the profile does not restrict by gender.
func (g ProfileGender) ProductGender() (Gender, bool) {
	switch g {
	case ProfileMale:
		return GenderMale, true
	case ProfileFemale:
		return GenderFemale, true
	default:
		return "", false
	}
}

// UserProfile is collected once before the quiz starts.
type UserProfile struct {
	Name     string        `json:"name" validate:"notblank,max=120"`
	Email    string        `json:"email,omitempty" validate:"omitempty,email"`
	Age      *int          `json:"age,omitempty" validate:"omitempty,min=16,max=100"`
	Gender   ProfileGender `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	SkinType string        `json:"skinType,omitempty" validate:"omitempty,oneof=dry oily combination sensitive normal"`
}

// QuizAnswers holds one value per quiz step. Empty values mean unanswered.
type QuizAnswers struct {
	Occasion        Occasion  `json:"occasion"`
	TimeOfDay       TimeOfDay `json:"timeOfDay"`
	OlfactoryFamily Family    `json:"olfactoryFamily"`
	Intensity       Intensity `json:"intensity"`
	Season          Season    `json:"season"`
	PreferredNotes  []string  `json:"preferredNotes"`
}

// AnswersPatch carries a partial answer update; nil fields are left untouched.
type AnswersPatch struct {
	Occasion        *Occasion  `json:"occasion" validate:"omitempty,oneof=daily work evening special romantic"`
	TimeOfDay       *TimeOfDay `json:"timeOfDay" validate:"omitempty,oneof=morning afternoon evening all-day"`
	OlfactoryFamily *Family    `json:"olfactoryFamily" validate:"omitempty,oneof=floral citrus woody oriental fresh sweet"`
	Intensity       *Intensity `json:"intensity" validate:"omitempty,oneof=light moderate strong"`
	Season          *Season    `json:"season" validate:"omitempty,oneof=spring summer autumn winter all-seasons"`
	PreferredNotes  []string   `json:"preferredNotes" validate:"omitempty,max=20,dive,max=60"`
	// PreferredNotesText is the raw comma-separated answer of the notes step.
	PreferredNotesText *string `json:"preferredNotesText" validate:"omitempty,max=500"`
}

// StepType describes how a quiz step is answered.
type StepType string

const (
	StepSingle StepType = "single"
	StepText   StepType = "text"
)

// QuizOption is one selectable answer of a step.
type QuizOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// QuizStep is one question of the quiz.
type QuizStep struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Type     StepType     `json:"type"`
	Options  []QuizOption `json:"options"`
}

// QuizSteps is the fixed question sequence.
var QuizSteps = []QuizStep{
	{
		ID:       "occasion",
		Question: "Para que ocasião você está procurando um perfume?",
		Type:     StepSingle,
		Options: []QuizOption{
			{Value: string(OccasionDaily), Label: "Uso diário", Description: "Para o dia a dia"},
			{Value: string(OccasionWork), Label: "Trabalho", Description: "Para o ambiente profissional"},
			{Value: string(OccasionEvening), Label: "Noite", Description: "Para eventos noturnos"},
			{Value: string(OccasionSpecial), Label: "Ocasiões especiais", Description: "Para momentos únicos"},
			{Value: string(OccasionRomantic), Label: "Romântico", Description: "Para encontros e momentos íntimos"},
		},
	},
	{
		ID:       "timeOfDay",
		Question: "Em que período do dia você mais usa perfume?",
		Type:     StepSingle,
		Options: []QuizOption{
			{Value: string(TimeMorning), Label: "Manhã", Description: "Para começar o dia"},
			{Value: string(TimeAfternoon), Label: "Tarde", Description: "Para o período vespertino"},
			{Value: string(TimeEvening), Label: "Noite", Description: "Para eventos noturnos"},
			{Value: string(TimeAllDay), Label: "O dia todo", Description: "Para longa duração"},
		},
	},
	{
		ID:       "olfactoryFamily",
		Question: "Qual família olfativa você prefere?",
		Type:     StepSingle,
		Options: []QuizOption{
			{Value: string(FamilyFloral), Label: "Floral", Description: "Rosas, jasmim, lavanda..."},
			{Value: string(FamilyCitrus), Label: "Cítrico", Description: "Limão, bergamota, laranja..."},
			{Value: string(FamilyWoody), Label: "Amadeirado", Description: "Sândalo, cedro, patchouli..."},
			{Value: string(FamilyOriental), Label: "Orientais", Description: "Baunilha, âmbar, especiarias..."},
			{Value: string(FamilyFresh), Label: "Frescos", Description: "Marinho, menta, eucalipto..."},
			{Value: string(FamilySweet), Label: "Doce", Description: "Caramelo, chocolate, mel..."},
		},
	},
	{
		ID:       "intensity",
		Question: "Qual intensidade você prefere?",
		Type:     StepSingle,
		Options: []QuizOption{
			{Value: string(IntensityLight), Label: "Leve", Description: "Sutil e delicado"},
			{Value: string(IntensityModerate), Label: "Moderada", Description: "Equilibrado e presente"},
			{Value: string(IntensityStrong), Label: "Intenso", Description: "Marcante e duradouro"},
		},
	},
	{
		ID:       "season",
		Question: "Para qual estação você está procurando?",
		Type:     StepSingle,
		Options: []QuizOption{
			{Value: string(SeasonSpring), Label: "Primavera", Description: "Fresco e florido"},
			{Value: string(SeasonSummer), Label: "Verão", Description: "Leve e refrescante"},
			{Value: string(SeasonAutumn), Label: "Outono", Description: "Aconchegante e quente"},
			{Value: string(SeasonWinter), Label: "Inverno", Description: "Intenso e envolvente"},
			{Value: string(SeasonAll), Label: "Todas as estações", Description: "Versátil para qualquer época"},
		},
	},
	{
		ID:       "preferredNotes",
		Question: "Tem alguma nota específica que você gosta ou quer evitar?",
		Type:     StepText,
		Options:  []QuizOption{},
	},
}

// LastStep is the index of the final quiz step.
var LastStep = len(QuizSteps) - 1

// ParsePreferredNotes splits the free-text notes answer on commas.
func ParsePreferredNotes(text string) []string {
	notes := []string{}
	for _, part := range strings.Split(text, ",") {
		if note := strings.TrimSpace(part); note != "" {
			notes = append(notes, note)
		}
	}
	return notes
}
