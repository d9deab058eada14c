package catalogsync

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/example/scentquiz/internal/models"
	"github.com/example/scentquiz/internal/shopify"
)

const (
	DefaultStorefrontURL = "https://floryn.com.br"

	collectionPlaceholderImage = "https://images.unsplash.com/photo-1541643600914-78b084683601?w=400&h=300&fit=crop"
	productPlaceholderImage    = "https://images.unsplash.com/photo-1594736797933-d0c29c0b0c8b?w=400&h=300&fit=crop&q=80"
)

var htmlTag = regexp.MustCompile(`<[^>]*>?`)

type noteSet struct {
	top, heart, base []string
}

var familyNotes = map[models.Family]noteSet{
	models.FamilyFloral: {
		top:   []string{"bergamota", "rosa"},
		heart: []string{"jasmim", "lírio-do-vale"},
		base:  []string{"patchouli", "almíscar"},
	},
	models.FamilyWoody: {
		top:   []string{"cedro", "vetiver"},
		heart: []string{"sândalo", "cedro"},
		base:  []string{"âmbar", "baunilha"},
	},
	models.FamilyOriental: {
		top:   []string{"baunilha", "canela"},
		heart: []string{"âmbar", "jasmim"},
		base:  []string{"sândalo", "almíscar"},
	},
	models.FamilyCitrus: {
		top:   []string{"limão", "bergamota"},
		heart: []string{"laranja", "grapefruit"},
		base:  []string{"cedro", "vetiver"},
	},
	models.FamilyFruity: {
		top:   []string{"pêssego", "maçã"},
		heart: []string{"frutas vermelhas", "pêra"},
		base:  []string{"baunilha", "caramelo"},
	},
}

var defaultNotes = noteSet{
	top:   []string{"bergamota", "limão"},
	heart: []string{"jasmim", "rosa"},
	base:  []string{"sândalo", "almíscar"},
}

// Attributes are the quiz-facing fields synthesized for a remote product.
type Attributes struct {
	Gender          models.Gender
	OlfactoryFamily models.Family
	Intensity       models.Intensity
	Occasions       []models.Occasion
	TimeOfDay       []models.TimeOfDay
	Season          []models.Season
	TopNotes        []string
	HeartNotes      []string
	BaseNotes       []string
}

// Synthesize derives quiz attributes from the product title and tags. A
// non-unisex collection gender takes precedence over title and tags.
func Synthesize(p shopify.Product, collectionGender models.Gender) Attributes {
	gender := collectionGender
	if gender == "" || gender == models.GenderUnisex {
		gender = TitleTagGender.Match(p.Title, p.Tags)
	}
	family := TitleFamily.Match(p.Title, nil)
	intensity := TitleIntensity.Match(p.Title, nil)

	a := Attributes{
		Gender:          gender,
		OlfactoryFamily: family,
		Intensity:       intensity,
	}

	switch gender {
	case models.GenderMale:
		a.Occasions = []models.Occasion{models.OccasionDaily, models.OccasionWork}
	case models.GenderFemale:
		a.Occasions = []models.Occasion{models.OccasionDaily, models.OccasionSpecial}
	default:
		a.Occasions = []models.Occasion{models.OccasionDaily}
	}

	switch intensity {
	case models.IntensityLight:
		a.TimeOfDay = []models.TimeOfDay{models.TimeMorning, models.TimeAfternoon}
	case models.IntensityStrong:
		a.TimeOfDay = []models.TimeOfDay{models.TimeEvening}
	default:
		a.TimeOfDay = []models.TimeOfDay{models.TimeAllDay}
	}

	switch family {
	case models.FamilyCitrus, models.FamilyFresh:
		a.Season = []models.Season{models.SeasonSpring, models.SeasonSummer}
	case models.FamilyWoody, models.FamilyOriental:
		a.Season = []models.Season{models.SeasonAutumn, models.SeasonWinter}
	default:
		a.Season = []models.Season{models.SeasonAll}
	}

	notes, ok := familyNotes[family]
	if !ok {
		notes = defaultNotes
	}
	a.TopNotes = append([]string{}, notes.top...)
	a.HeartNotes = append([]string{}, notes.heart...)
	a.BaseNotes = append([]string{}, notes.base...)
	return a
}

// MapCollectionProduct converts a product fetched through a collection.
func MapCollectionProduct(p shopify.Product, collectionGender models.Gender, storefront string) models.Product {
	a := Synthesize(p, collectionGender)
	h := idHash(p.ID)

	image := p.ImageURL
	if image == "" {
		image = collectionPlaceholderImage
	}
	category := strings.TrimSpace(p.ProductType)
	if category == "" {
		category = "perfume"
	}

	return models.Product{
		ID:              p.ID,
		Name:            p.Title,
		Brand:           p.Vendor,
		Description:     StripHTML(p.DescriptionHTML),
		Price:           price(p),
		Image:           image,
		ProductURL:      productURL(storefront, p.Handle),
		Category:        category,
		Occasions:       a.Occasions,
		TimeOfDay:       a.TimeOfDay,
		OlfactoryFamily: a.OlfactoryFamily,
		Intensity:       a.Intensity,
		Season:          a.Season,
		TopNotes:        a.TopNotes,
		HeartNotes:      a.HeartNotes,
		BaseNotes:       a.BaseNotes,
		Gender:          a.Gender,
		Available:       strings.EqualFold(p.Status, "ACTIVE"),
		Rating:          roundRating(4.0 + float64(h%100)/100),
		Reviews:         10 + int((h>>16)%200),
	}
}

// MapProduct converts a product fetched from the full product listing.
// Only gender and family are inferred; everything else uses fixed defaults.
func MapProduct(p shopify.Product, storefront string) models.Product {
	family := ProductTypeFamily.Match(p.ProductType, nil)
	h := idHash(p.ID)

	description := strings.TrimSpace(p.Description)
	if description == "" {
		description = fmt.Sprintf("Fragrância %s de alta qualidade.", p.Vendor)
	}
	image := p.ImageURL
	if image == "" {
		image = productPlaceholderImage
	}

	return models.Product{
		ID:              NumericID(p.ID),
		Name:            p.Title,
		Brand:           p.Vendor,
		Description:     description,
		Price:           price(p),
		Image:           image,
		ProductURL:      productURL(storefront, p.Handle),
		Category:        string(family),
		Occasions:       []models.Occasion{models.OccasionDaily, models.OccasionSpecial},
		TimeOfDay:       []models.TimeOfDay{models.TimeAllDay},
		OlfactoryFamily: family,
		Intensity:       models.IntensityModerate,
		Season:          []models.Season{models.SeasonAll},
		TopNotes:        []string{"bergamota", "limão"},
		HeartNotes:      []string{"jasmim", "rosa"},
		BaseNotes:       []string{"sândalo", "âmbar"},
		Gender:          TitleGender.Match(p.Title, nil),
		Available:       p.AvailableForSale,
		Rating:          4.5,
		Reviews:         50 + int(h%200),
	}
}

// NumericID returns the last path segment of a Shopify global id.
func NumericID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

func StripHTML(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}

func productURL(storefront, handle string) string {
	if storefront == "" {
		storefront = DefaultStorefrontURL
	}
	return strings.TrimRight(storefront, "/") + "/products/" + handle
}

func price(p shopify.Product) float64 {
	return p.Price.Round(2).InexactFloat64()
}

// idHash gives stable pseudo-random numbers per product so repeated syncs of
// the same store produce the same feed.
func idHash(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

func roundRating(r float64) float64 {
	return math.Round(r*100) / 100
}
