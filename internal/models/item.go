// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package models

import (
	"time"
)

// Category identifies one of the five clothing slots. Exactly one item may
// occupy each slot in a complete outfit. The values are the Danish keys
// used by the ingestion flow and stored in item documents.
type Category string

const (
	// CategoryTop is the sweater/shirt slot.
	CategoryTop Category = "Top"
	// CategoryBottom is the trousers slot.
	CategoryBottom Category = "Bund"
	// CategorySocks is the socks slot.
	CategorySocks Category = "Strømper"
	// CategoryShoes is the shoes slot.
	CategoryShoes Category = "Sko"
	// CategoryOuterwear is the jacket/coat slot.
	CategoryOuterwear Category = "Overtøj"
)

// AllCategories lists the clothing slots in presentation order.
// The order is also the enumeration order used when the ranking engine
// walks unfilled categories.
var AllCategories = []Category{
	CategoryTop,
	CategoryBottom,
	CategorySocks,
	CategoryShoes,
	CategoryOuterwear,
}

// categoryLabels maps wire values to display labels.
var categoryLabels = map[Category]string{
	CategoryTop:       "Trøje",
	CategoryBottom:    "Bukser",
	CategorySocks:     "Strømper",
	CategoryShoes:     "Sko",
	CategoryOuterwear: "Overtøj",
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-facing display label for the category.
// Unknown categories return their raw value.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Colors is the closed color vocabulary the ingestion flow may emit.
// The resolver in internal/colormatch treats anything outside this set as
// a plain string; membership is enforced at the ingestion boundary only.
var Colors = []string{
	"Sort", "Hvid", "Grå", "Navy", "Blå", "Beige", "Brun", "Grøn", "Rød", "Accent",
}

// ItemAnalysis holds the structured metadata produced for a single item by
// the external image-analysis flow. The compatibility map is keyed by the
// *other* item's category; each list is ordered best-match-first, and the
// position of a color in the list is its match penalty.
type ItemAnalysis struct {
	// Category is the clothing slot this item occupies.
	Category Category `json:"category" validate:"required,category"`

	// Type is the garment type (e.g. "Strik", "Chinos", "Sneakers").
	Type string `json:"type" validate:"required"`

	// DisplayName is a short descriptive name (e.g. "Olivengrøn Strik").
	DisplayName string `json:"display_name" validate:"required"`

	// PrimaryColor is the dominant color from the closed vocabulary.
	PrimaryColor string `json:"primary_color" validate:"required,color"`

	// Shade is the intensity: Lys, Mellem or Mørk.
	Shade string `json:"shade,omitempty"`

	// SecondaryColor is an optional second color ("Ingen" when absent).
	SecondaryColor string `json:"secondary_color,omitempty"`

	// Pattern is Solid, Struktur or Mønster.
	Pattern string `json:"pattern,omitempty"`

	// Material is the primary material (Bomuld, Uld, Læder, ...).
	Material string `json:"material,omitempty"`

	// Season is the warmth class: Sommer, Vinter, Helårs or Overgang.
	Season string `json:"season,omitempty" validate:"omitempty,season"`

	// Compatibility maps other categories to the ordered list of colors
	// this item accepts for an item in that category. Earlier is better;
	// the 0-based index is the base match score. An item never carries an
	// entry for its own category (stripped at ingestion).
	Compatibility map[Category][]string `json:"compatibility" validate:"required"`
}

// AllowedColors returns the ordered list of colors the item accepts for a
// partner item in the given category. A nil analysis or missing entry
// returns nil, which downstream resolves as "no match".
func (a *ItemAnalysis) AllowedColors(other Category) []string {
	if a == nil || a.Compatibility == nil {
		return nil
	}
	return a.Compatibility[other]
}

// WardrobeItem is a single piece of clothing in the catalog. Items are
// created by the ingestion flow and persist indefinitely; only the wear
// statistics mutate afterwards, via explicit wear events.
type WardrobeItem struct {
	// ID is the opaque document identifier (UUID assigned at ingestion).
	ID string `json:"id"`

	// Filename is the stored image file name.
	Filename string `json:"filename,omitempty"`

	// ImagePath is the relative path to the item photo.
	ImagePath string `json:"image_path,omitempty"`

	// Analysis is the structured metadata for the item.
	Analysis ItemAnalysis `json:"analysis"`

	// UsageCount is the number of recorded wear events.
	UsageCount int `json:"usage_count"`

	// AvgTemp is the running mean of the feels-like temperature at the
	// time of wear, in °C. Nil until a wear event carries a reading.
	AvgTemp *float64 `json:"avg_temp,omitempty"`

	// TempSamples is the number of wear events that carried a temperature
	// reading; the denominator behind AvgTemp. Wears without a reading
	// advance UsageCount but not this.
	TempSamples int `json:"temp_samples,omitempty"`

	// LastWorn is the timestamp of the most recent wear event.
	LastWorn *time.Time `json:"last_worn,omitempty"`

	// CreatedAt is when the item was ingested.
	CreatedAt time.Time `json:"created_at"`
}

// Category is a convenience accessor for the item's clothing slot.
func (i *WardrobeItem) Category() Category {
	return i.Analysis.Category
}
