// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package colormatch

// DefaultSynonymPenalty is the score added on top of a synonym's list
// position when a match resolves through the synonym map instead of the
// exact color.
const DefaultSynonymPenalty = 4

// synonyms maps each color to its near-equivalent substitute. The map is
// symmetric: both directions are present so lookup never needs to try the
// reverse.
var synonyms = map[string]string{
	"Hvid":     "Creme",
	"Creme":    "Hvid",
	"Navy":     "Blå",
	"Blå":      "Navy",
	"Grøn":     "Oliven",
	"Oliven":   "Grøn",
	"Rød":      "Bordeaux",
	"Bordeaux": "Rød",
}

// Match is the outcome of resolving a target color against an ordered
// list of acceptable colors.
type Match struct {
	// Score is the resolved match score; lower is better. The score is
	// the 0-based list position for exact matches, or the synonym's
	// position plus the penalty for synonym matches.
	Score int

	// Synonym reports whether the match relied on the synonym fallback.
	Synonym bool
}

// Synonym returns the fixed substitute for a color, if one exists.
func Synonym(color string) (string, bool) {
	s, ok := synonyms[color]
	return s, ok
}

// Resolve matches target against the ordered allowed list using the
// default synonym penalty. See ResolveWithPenalty.
func Resolve(target string, allowed []string) (Match, bool) {
	return ResolveWithPenalty(target, allowed, DefaultSynonymPenalty)
}

// ResolveWithPenalty matches target against the ordered allowed list.
// Exact presence wins with the 0-based position as score. Otherwise the
// target's synonym is looked up in the list at position+penalty. An empty
// target or list, or no match either way, returns ok=false.
func ResolveWithPenalty(target string, allowed []string, penalty int) (Match, bool) {
	if target == "" || len(allowed) == 0 {
		return Match{}, false
	}

	for i, c := range allowed {
		if c == target {
			return Match{Score: i, Synonym: false}, true
		}
	}

	syn, hasSyn := synonyms[target]
	if !hasSyn {
		return Match{}, false
	}

	for i, c := range allowed {
		if c == syn {
			return Match{Score: i + penalty, Synonym: true}, true
		}
	}

	return Match{}, false
}
