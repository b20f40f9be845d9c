// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package outfit

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mkrogh/garderobe/internal/colormatch"
	"github.com/mkrogh/garderobe/internal/models"
)

// Engine evaluates outfit compatibility and ranks candidate items.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	history HistoryProvider
}

// NewEngine creates an outfit engine with the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "outfit").Logger(),
	}, nil
}

// SetHistoryProvider sets the feedback history source. Without a provider
// the historical adjustment is always zero.
func (e *Engine) SetHistoryProvider(hp HistoryProvider) {
	e.history = hp
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// CheckAddition determines whether candidate may join the selection.
// Each already-selected item and the candidate must accept each other's
// primary color for the other's category; both resolved scores accumulate
// into the total. The check stops at the first incompatible pair. An
// empty selection is trivially valid with score 0.
func (e *Engine) CheckAddition(candidate *models.WardrobeItem, selection Selection) Validity {
	total := 0
	usedSynonym := false

	for i := range selection {
		selected := &selection[i]

		allowedBySelected := selected.Analysis.AllowedColors(candidate.Category())
		allowedByCandidate := candidate.Analysis.AllowedColors(selected.Category())

		forward, okForward := colormatch.ResolveWithPenalty(
			candidate.Analysis.PrimaryColor, allowedBySelected, e.config.SynonymPenalty)
		backward, okBackward := colormatch.ResolveWithPenalty(
			selected.Analysis.PrimaryColor, allowedByCandidate, e.config.SynonymPenalty)

		// Both directions must allow the pairing.
		if !okForward || !okBackward {
			return Validity{Valid: false}
		}

		total += forward.Score + backward.Score
		usedSynonym = usedSynonym || forward.Synonym || backward.Synonym
	}

	return Validity{Valid: true, ColorScore: total, UsedSynonym: usedSynonym}
}

// IsDeadEnd reports whether adding candidate to the selection would leave
// at least one still-unfilled category with stocked items but no valid
// option. Categories with zero items in the wardrobe are not dead ends.
//
// This is a one-level lookahead: it does not verify that the found
// compatible item itself leaves further room.
func (e *Engine) IsDeadEnd(candidate *models.WardrobeItem, selection Selection, wardrobe []models.WardrobeItem) bool {
	hypothetical := make(Selection, 0, len(selection)+1)
	hypothetical = append(hypothetical, selection...)
	hypothetical = append(hypothetical, *candidate)

	filled := hypothetical.Categories()

	for _, cat := range models.AllCategories {
		if _, ok := filled[cat]; ok {
			continue
		}

		stocked := false
		satisfiable := false
		for i := range wardrobe {
			if wardrobe[i].Category() != cat {
				continue
			}
			stocked = true
			if e.CheckAddition(&wardrobe[i], hypothetical).Valid {
				satisfiable = true
				break
			}
		}

		if stocked && !satisfiable {
			e.logger.Debug().
				Str("candidate", candidate.ID).
				Str("category", string(cat)).
				Msg("dead end: no compatible option left")
			return true
		}
	}

	return false
}

// RankCandidates scores every valid candidate against the selection and
// returns them ordered ascending by score. Invalid candidates are
// dropped. The sort is stable: equal scores keep enumeration order.
// Candidates are scored in parallel; results are deterministic.
func (e *Engine) RankCandidates(ctx context.Context, candidates []models.WardrobeItem, selection Selection, weather *models.WeatherSnapshot) []ScoredCandidate {
	approved := e.loadApprovedSets(ctx)

	type result struct {
		scored ScoredCandidate
		valid  bool
	}

	results := make([]result, len(candidates))
	var wg sync.WaitGroup

	for i := range candidates {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			item := &candidates[idx]
			validity := e.CheckAddition(item, selection)
			if !validity.Valid {
				return
			}

			breakdown := ScoreBreakdown{
				ColorScore:  validity.ColorScore,
				UsedSynonym: validity.UsedSynonym,
			}

			breakdown.WeatherPenalty = e.weatherPenalty(item, weather)
			breakdown.HistoryAdjustment = e.historyAdjustment(ctx, item, selection, approved)

			score := float64(breakdown.ColorScore) + breakdown.WeatherPenalty + breakdown.HistoryAdjustment
			breakdown.TopPick = len(selection) > 0 && score < e.config.TopPickThreshold

			results[idx] = result{
				scored: ScoredCandidate{Item: *item, Score: score, Breakdown: breakdown},
				valid:  true,
			}
		}(i)
	}

	wg.Wait()

	ranked := make([]ScoredCandidate, 0, len(candidates))
	for i := range results {
		if results[i].valid {
			ranked = append(ranked, results[i].scored)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	return ranked
}

// weatherPenalty computes the temperature-mismatch penalty for an item.
// Zero when the item has never been worn or no reading is available: no
// information, no penalty, so untested items compete equally with proven
// ones.
func (e *Engine) weatherPenalty(item *models.WardrobeItem, weather *models.WeatherSnapshot) float64 {
	if weather == nil || weather.FeelsLikeAvg == nil || item.AvgTemp == nil {
		return 0
	}
	return math.Abs(*weather.FeelsLikeAvg-*item.AvgTemp) * e.config.WeatherPenaltyFactor
}

// historyAdjustment computes the feedback adjustment for adding item to
// the selection: the success bonus is subtracted when the resulting set
// is a subset of any approved outfit, the rejection penalty is added when
// the exact set was rejected. Provider errors are logged and neutral.
func (e *Engine) historyAdjustment(ctx context.Context, item *models.WardrobeItem, selection Selection, approved [][]string) float64 {
	resulting := append(selection.IDs(), item.ID)
	adjustment := 0.0

	if subsetOfAny(resulting, approved) {
		adjustment -= e.config.SuccessBonus
	}

	if e.history != nil {
		key := models.OutfitKey(resulting)
		rejected, err := e.history.IsRejected(ctx, key)
		if err != nil {
			e.logger.Warn().Err(err).Str("key", key).Msg("rejection lookup failed")
		} else if rejected {
			adjustment += e.config.RejectionPenalty
		}
	}

	return adjustment
}

// loadApprovedSets fetches the approved id-sets once per ranking run.
// Errors degrade to no-bonus scoring.
func (e *Engine) loadApprovedSets(ctx context.Context) [][]string {
	if e.history == nil {
		return nil
	}

	sets, err := e.history.ApprovedSets(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("approved-set lookup failed")
		return nil
	}
	return sets
}

// subsetOfAny reports whether ids is a subset of at least one of sets.
func subsetOfAny(ids []string, sets [][]string) bool {
	for _, set := range sets {
		if len(set) < len(ids) {
			continue
		}
		members := make(map[string]struct{}, len(set))
		for _, id := range set {
			members[id] = struct{}{}
		}
		contained := true
		for _, id := range ids {
			if _, ok := members[id]; !ok {
				contained = false
				break
			}
		}
		if contained {
			return true
		}
	}
	return false
}

// StyleScore computes the overall color score of an assembled selection:
// the average two-directional color score over all unique pairs.
// Incompatible pairs contribute the configured penalty instead of being
// excluded, so an inconsistent outfit still receives a display score.
// Selections with fewer than two items score 0.
func (e *Engine) StyleScore(selection Selection) float64 {
	if len(selection) < 2 {
		return 0
	}

	total := 0.0
	pairs := 0

	for i := 0; i < len(selection); i++ {
		for j := i + 1; j < len(selection); j++ {
			pair := Selection{selection[i]}
			validity := e.CheckAddition(&selection[j], pair)
			if validity.Valid {
				total += float64(validity.ColorScore)
			} else {
				total += e.config.IncompatiblePairPenalty
			}
			pairs++
		}
	}

	return total / float64(pairs)
}

// InspirationColors returns the colors every selected item agrees would
// suit the given category, sorted alphabetically. Useful as a shopping
// hint for a still-missing slot. An empty selection returns nil.
func (e *Engine) InspirationColors(selection Selection, category models.Category) []string {
	if len(selection) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for i := range selection {
		// Compatibility lists may carry duplicate entries; each item
		// contributes one vote per color.
		seen := make(map[string]struct{})
		for _, c := range selection[i].Analysis.AllowedColors(category) {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			counts[c]++
		}
	}

	agreed := make([]string, 0, len(counts))
	for c, n := range counts {
		if n == len(selection) {
			agreed = append(agreed, c)
		}
	}

	if len(agreed) == 0 {
		return nil
	}

	sort.Strings(agreed)
	return agreed
}
