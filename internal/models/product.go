package models

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

// Gender is the audience alphabet used by catalog products.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderUnisex Gender = "U"
)

// Product is one entry of the catalog feed. It is treated as read-only once loaded.
type Product struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Brand           string      `json:"brand"`
	Description     string      `json:"description"`
	Price           float64     `json:"price"`
	Image           string      `json:"image"`
	ProductURL      string      `json:"product_url"`
	Category        string      `json:"category"`
	Occasions       []Occasion  `json:"occasions"`
	TimeOfDay       []TimeOfDay `json:"time_of_day"`
	OlfactoryFamily Family      `json:"olfactory_family"`
	Intensity       Intensity   `json:"intensity"`
	Season          []Season    `json:"season"`
	TopNotes        []string    `json:"top_notes"`
	HeartNotes      []string    `json:"heart_notes"`
	BaseNotes       []string    `json:"base_notes"`
	Gender          Gender      `json:"gender"`
	Available       bool        `json:"available"`
	Rating          float64     `json:"rating"`
	Reviews         int         `json:"reviews"`
}

type productAlias Product

// UnmarshalJSON decodes a feed entry, defaulting fields the source omitted
// instead of rejecting the record.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw productAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product(raw)
	p.ApplyDefaults()
	return nil
}

// ApplyDefaults fills empty lists and the unisex gender.
func (p *Product) ApplyDefaults() {
	if p.Occasions == nil {
		p.Occasions = []Occasion{}
	}
	if p.TimeOfDay == nil {
		p.TimeOfDay = []TimeOfDay{}
	}
	if p.Season == nil {
		p.Season = []Season{}
	}
	if p.TopNotes == nil {
		p.TopNotes = []string{}
	}
	if p.HeartNotes == nil {
		p.HeartNotes = []string{}
	}
	if p.BaseNotes == nil {
		p.BaseNotes = []string{}
	}
	p.Gender = Gender(strings.ToUpper(strings.TrimSpace(string(p.Gender))))
	if p.Gender == "" {
		p.Gender = GenderUnisex
	}
}

// AllNotes returns top, heart and base notes in that order.
func (p *Product) AllNotes() []string {
	notes := make([]string, 0, len(p.TopNotes)+len(p.HeartNotes)+len(p.BaseNotes))
	notes = append(notes, p.TopNotes...)
	notes = append(notes, p.HeartNotes...)
	return append(notes, p.BaseNotes...)
}

// CatalogProduct mirrors the catalog feed in Postgres.
type CatalogProduct struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Position        int            `gorm:"index" json:"position"`
	Name            string         `json:"name"`
	Brand           string         `json:"brand"`
	Description     string         `json:"description"`
	Price           float64        `json:"price"`
	Image           string         `json:"image"`
	ProductURL      string         `json:"product_url"`
	Category        string         `json:"category"`
	Occasions       pq.StringArray `gorm:"type:text[]" json:"occasions"`
	TimeOfDay       pq.StringArray `gorm:"type:text[]" json:"time_of_day"`
	OlfactoryFamily string         `gorm:"index" json:"olfactory_family"`
	Intensity       string         `json:"intensity"`
	Season          pq.StringArray `gorm:"type:text[]" json:"season"`
	TopNotes        pq.StringArray `gorm:"type:text[]" json:"top_notes"`
	HeartNotes      pq.StringArray `gorm:"type:text[]" json:"heart_notes"`
	BaseNotes       pq.StringArray `gorm:"type:text[]" json:"base_notes"`
	Gender          string         `gorm:"index" json:"gender"`
	Available       bool           `json:"available"`
	Rating          float64        `json:"rating"`
	Reviews         int            `json:"reviews"`
}

// NewCatalogProduct converts a feed product into its table row.
func NewCatalogProduct(p Product, position int) CatalogProduct {
	return CatalogProduct{
		ID:              p.ID,
		Position:        position,
		Name:            p.Name,
		Brand:           p.Brand,
		Description:     p.Description,
		Price:           p.Price,
		Image:           p.Image,
		ProductURL:      p.ProductURL,
		Category:        p.Category,
		Occasions:       toStrings(p.Occasions),
		TimeOfDay:       toStrings(p.TimeOfDay),
		OlfactoryFamily: string(p.OlfactoryFamily),
		Intensity:       string(p.Intensity),
		Season:          toStrings(p.Season),
		TopNotes:        pq.StringArray(append([]string{}, p.TopNotes...)),
		HeartNotes:      pq.StringArray(append([]string{}, p.HeartNotes...)),
		BaseNotes:       pq.StringArray(append([]string{}, p.BaseNotes...)),
		Gender:          string(p.Gender),
		Available:       p.Available,
		Rating:          p.Rating,
		Reviews:         p.Reviews,
	}
}

// Product converts the row back into a feed product.
func (c CatalogProduct) Product() Product {
	p := Product{
		ID:              c.ID,
		Name:            c.Name,
		Brand:           c.Brand,
		Description:     c.Description,
		Price:           c.Price,
		Image:           c.Image,
		ProductURL:      c.ProductURL,
		Category:        c.Category,
		Occasions:       fromStrings[Occasion](c.Occasions),
		TimeOfDay:       fromStrings[TimeOfDay](c.TimeOfDay),
		OlfactoryFamily: Family(c.OlfactoryFamily),
		Intensity:       Intensity(c.Intensity),
		Season:          fromStrings[Season](c.Season),
		TopNotes:        []string(c.TopNotes),
		HeartNotes:      []string(c.HeartNotes),
		BaseNotes:       []string(c.BaseNotes),
		Gender:          Gender(c.Gender),
		Available:       c.Available,
		Rating:          c.Rating,
		Reviews:         c.Reviews,
	}
	p.ApplyDefaults()
	return p
}

func toStrings[T ~string](values []T) pq.StringArray {
	out := make(pq.StringArray, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func fromStrings[T ~string](values []string) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
