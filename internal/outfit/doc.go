// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package outfit implements the outfit compatibility and ranking engine.
//
// # Operations
//
// The engine exposes five operations over a current selection (at most one
// item per clothing slot):
//
//   - CheckAddition: may this candidate join the selection, and at what
//     cumulative color cost?
//   - IsDeadEnd: would adding the candidate leave some still-unfilled
//     category with no compatible option in the wardrobe?
//   - RankCandidates: order valid candidates by combined color, weather
//     and historical-feedback score (lower is better).
//   - StyleScore: overall pairwise color score of an assembled selection.
//   - InspirationColors: colors every selected item agrees would suit a
//     still-missing category.
//
// # Semantics
//
// Compatibility is two-directional: the selected item must accept the
// candidate's color for the candidate's category AND the candidate must
// accept the selected item's color for the selected item's category. A
// one-directional allowance is insufficient. Validity checking stops at
// the first incompatible pair.
//
// The dead-end analysis is a deliberate one-level lookahead: it verifies
// that each unfilled category retains at least one valid option, but does
// not recurse into whether that option in turn leaves room. Deepening the
// lookahead would change recommendations and is intentionally avoided.
//
// Ranking is a stable ascending sort; candidates with equal scores keep
// their enumeration order. Missing signals (no weather, never-worn items,
// no feedback history) contribute neutrally: scoring degrades rather than
// failing.
//
// # Thread Safety
//
// All operations are pure with respect to engine state and safe for
// concurrent use. Candidate scoring within RankCandidates runs in
// parallel; the final sort is deterministic.
package outfit
