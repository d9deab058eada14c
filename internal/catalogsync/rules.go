// Package catalogsync turns Shopify products into catalog feed entries.
package catalogsync

import (
	"slices"
	"strings"

	"github.com/example/scentquiz/internal/models"
)

// Rule assigns Value when the text contains one of Keywords or the tag list
// contains one of Tags. Matching is case-insensitive.
type Rule[T ~string] struct {
	Value    T
	Keywords []string
	Tags     []string
}

// RuleSet is evaluated top to bottom; the first matching rule wins and
// Default applies when none match.
type RuleSet[T ~string] struct {
	Rules   []Rule[T]
	Default T
}

func (rs RuleSet[T]) Match(text string, tags []string) T {
	text = strings.ToLower(text)
	lowerTags := make([]string, len(tags))
	for i, t := range tags {
		lowerTags[i] = strings.ToLower(strings.TrimSpace(t))
	}

	for _, r := range rs.Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Value
			}
		}
		for _, tag := range r.Tags {
			if slices.Contains(lowerTags, tag) {
				return r.Value
			}
		}
	}
	return rs.Default
}

// CollectionGender classifies a collection title. Female keywords come first
// because "female" and "women" contain "male" and "men".
var CollectionGender = RuleSet[models.Gender]{
	Rules: []Rule[models.Gender]{
		{Value: models.GenderFemale, Keywords: []string{"feminino", "female", "women"}},
		{Value: models.GenderMale, Keywords: []string{"masculino", "male", "men"}},
	},
	Default: models.GenderUnisex,
}

// TitleTagGender classifies a product by title and tags in collections mode.
var TitleTagGender = RuleSet[models.Gender]{
	Rules: []Rule[models.Gender]{
		{Value: models.GenderMale, Keywords: []string{"masculino"}, Tags: []string{"masculino", "men"}},
		{Value: models.GenderFemale, Keywords: []string{"feminino"}, Tags: []string{"feminino", "women"}},
	},
	Default: models.GenderUnisex,
}

// TitleGender classifies a product by title in products mode.
var TitleGender = RuleSet[models.Gender]{
	Rules: []Rule[models.Gender]{
		{Value: models.GenderMale, Keywords: []string{"for men", "masculino", "homme"}},
		{Value: models.GenderFemale, Keywords: []string{"for women", "feminino", "femme"}},
	},
	Default: models.GenderUnisex,
}

var TitleFamily = RuleSet[models.Family]{
	Rules: []Rule[models.Family]{
		{Value: models.FamilyFloral, Keywords: []string{"floral", "rose", "jasmine"}},
		{Value: models.FamilyWoody, Keywords: []string{"woody", "sandal", "cedar"}},
		{Value: models.FamilyOriental, Keywords: []string{"oriental", "vanilla", "amber"}},
		{Value: models.FamilyCitrus, Keywords: []string{"citrus", "lemon", "bergamot"}},
		{Value: models.FamilyFruity, Keywords: []string{"fruity", "fruit", "peach"}},
	},
	Default: models.FamilyFresh,
}

var ProductTypeFamily = RuleSet[models.Family]{
	Rules: []Rule[models.Family]{
		{Value: models.FamilyWoody, Keywords: []string{"woody", "amadeirado"}},
		{Value: models.FamilyOriental, Keywords: []string{"oriental"}},
		{Value: models.FamilyCitrus, Keywords: []string{"citrus", "cítrico"}},
		{Value: models.FamilyFresh, Keywords: []string{"fresh", "fresco"}},
		{Value: models.FamilyFruity, Keywords: []string{"fruity", "frutado"}},
	},
	Default: models.FamilyFloral,
}

// TitleIntensity reads the concentration from the product title. The
// eau de parfum rule must precede the bare parfum rule.
var TitleIntensity = RuleSet[models.Intensity]{
	Rules: []Rule[models.Intensity]{
		{Value: models.IntensityLight, Keywords: []string{"eau de toilette", "edt"}},
		{Value: models.IntensityModerate, Keywords: []string{"eau de parfum", "edp"}},
		{Value: models.IntensityStrong, Keywords: []string{"parfum", "extrait"}},
	},
	Default: models.IntensityModerate,
}
