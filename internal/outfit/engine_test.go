// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package outfit

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkrogh/garderobe/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func item(id string, cat models.Category, color string, compat map[models.Category][]string) models.WardrobeItem {
	return models.WardrobeItem{
		ID: id,
		Analysis: models.ItemAnalysis{
			Category:      cat,
			PrimaryColor:  color,
			Compatibility: compat,
		},
	}
}

// fakeHistory is a HistoryProvider test double.
type fakeHistory struct {
	approved [][]string
	rejected map[string]bool
	err      error
}

func (f *fakeHistory) ApprovedSets(_ context.Context) ([][]string, error) {
	return f.approved, f.err
}

func (f *fakeHistory) IsRejected(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.rejected[key], nil
}

func TestCheckAddition_EmptySelection(t *testing.T) {
	e := newTestEngine(t)
	candidate := item("t1", models.CategoryTop, "Navy", nil)

	v := e.CheckAddition(&candidate, nil)
	if !v.Valid {
		t.Error("empty selection should be trivially valid")
	}
	if v.ColorScore != 0 {
		t.Errorf("ColorScore = %d, want 0", v.ColorScore)
	}
	if v.UsedSynonym {
		t.Error("empty selection should not use synonyms")
	}
}

func TestCheckAddition_MutualBestMatch(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige", "Grå"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy", "Sort"},
	})

	// Beige sits at index 0 in the top's list, Navy at index 0 in the
	// bottom's list: perfect mutual first-choice match.
	v := e.CheckAddition(&bund, Selection{top})
	if !v.Valid {
		t.Fatal("expected valid addition")
	}
	if v.ColorScore != 0 {
		t.Errorf("ColorScore = %d, want 0", v.ColorScore)
	}
	if v.UsedSynonym {
		t.Error("exact matches should not flag synonym use")
	}
}

func TestCheckAddition_ScoreAccumulatesBothDirections(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Sort", map[models.Category][]string{
		models.CategoryBottom: {"Beige", "Grå", "Brun"},
	})
	bund := item("b1", models.CategoryBottom, "Brun", map[models.Category][]string{
		models.CategoryTop: {"Hvid", "Sort"},
	})

	// Brun at index 2 in the top's list + Sort at index 1 in the
	// bottom's list.
	v := e.CheckAddition(&bund, Selection{top})
	if !v.Valid {
		t.Fatal("expected valid addition")
	}
	if v.ColorScore != 3 {
		t.Errorf("ColorScore = %d, want 3", v.ColorScore)
	}
}

func TestCheckAddition_OneDirectionalAllowanceIsInvalid(t *testing.T) {
	e := newTestEngine(t)

	// The top accepts Beige bottoms, but the bottom does not accept
	// Navy tops: one-directional allowance is insufficient.
	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Sort"},
	})

	if v := e.CheckAddition(&bund, Selection{top}); v.Valid {
		t.Error("one-directional allowance must be invalid")
	}
}

func TestCheckAddition_ShortCircuitsOnFirstIncompatiblePair(t *testing.T) {
	e := newTestEngine(t)

	// First selected item rejects the candidate; the second would
	// accept it. The result must be invalid regardless of the second.
	hostile := item("t1", models.CategoryTop, "Rød", map[models.Category][]string{
		models.CategoryShoes: {"Sort"},
	})
	friendly := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryShoes: {"Brun"},
	})
	shoes := item("s1", models.CategoryShoes, "Brun", map[models.Category][]string{
		models.CategoryTop:    {"Rød"},
		models.CategoryBottom: {"Beige"},
	})

	if v := e.CheckAddition(&shoes, Selection{hostile, friendly}); v.Valid {
		t.Error("candidate incompatible with first item must be invalid")
	}
}

func TestCheckAddition_SynonymFallback(t *testing.T) {
	e := newTestEngine(t)

	// The top's list has Navy but not Blå; a Blå bottom resolves via
	// the Navy synonym at index 1 + penalty 4. The reverse direction is
	// an exact match at index 0.
	top := item("t1", models.CategoryTop, "Sort", map[models.Category][]string{
		models.CategoryBottom: {"Beige", "Navy"},
	})
	bund := item("b2", models.CategoryBottom, "Blå", map[models.Category][]string{
		models.CategoryTop: {"Sort"},
	})

	v := e.CheckAddition(&bund, Selection{top})
	if !v.Valid {
		t.Fatal("expected valid addition via synonym")
	}
	if v.ColorScore != 5 {
		t.Errorf("ColorScore = %d, want 5 (index 1 + penalty 4 + reverse 0)", v.ColorScore)
	}
	if !v.UsedSynonym {
		t.Error("synonym use not flagged")
	}
}

func TestCheckAddition_MissingCompatibilityFailsClosed(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", nil)
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	if v := e.CheckAddition(&bund, Selection{top}); v.Valid {
		t.Error("missing compatibility list must resolve as no match")
	}
}

func deadEndWardrobe() []models.WardrobeItem {
	// Top t1 pairs with bottom b1 but with neither pair of shoes.
	return []models.WardrobeItem{
		item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
			models.CategoryBottom: {"Beige"},
			models.CategoryShoes:  {"Brun"},
		}),
		item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
			models.CategoryTop:   {"Navy"},
			models.CategoryShoes: {"Sort"},
		}),
		item("s1", models.CategoryShoes, "Sort", map[models.Category][]string{
			models.CategoryTop:    {"Navy"},
			models.CategoryBottom: {"Beige"},
		}),
		item("s2", models.CategoryShoes, "Brun", map[models.Category][]string{
			models.CategoryTop:    {"Navy"},
			models.CategoryBottom: {"Grå"},
		}),
	}
}

func TestIsDeadEnd_ReportsUnsatisfiableCategory(t *testing.T) {
	e := newTestEngine(t)
	wardrobe := deadEndWardrobe()

	top := wardrobe[0]
	bund := wardrobe[1]

	// With t1 selected, adding b1 leaves the shoe slot unsatisfiable:
	// s1 is Sort (t1 only accepts Brun shoes) and s2 requires Grå
	// bottoms. Both shoes are stocked but neither passes.
	if !e.IsDeadEnd(&bund, Selection{top}, wardrobe) {
		t.Error("expected dead end on the shoe category")
	}
}

func TestIsDeadEnd_FalseWhenEveryCategorySatisfiable(t *testing.T) {
	e := newTestEngine(t)

	wardrobe := []models.WardrobeItem{
		item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
			models.CategoryBottom: {"Beige"},
			models.CategoryShoes:  {"Sort"},
		}),
		item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
			models.CategoryTop:   {"Navy"},
			models.CategoryShoes: {"Sort"},
		}),
		item("s1", models.CategoryShoes, "Sort", map[models.Category][]string{
			models.CategoryTop:    {"Navy"},
			models.CategoryBottom: {"Beige"},
		}),
	}

	top := wardrobe[0]
	bund := wardrobe[1]

	// Socks and outerwear are unstocked (not dead ends); shoes have a
	// compatible option.
	if e.IsDeadEnd(&bund, Selection{top}, wardrobe) {
		t.Error("satisfiable wardrobe reported as dead end")
	}
}

func TestIsDeadEnd_UnstockedCategoryIsNotADeadEnd(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	// Wardrobe has only the two items; every other category is empty.
	wardrobe := []models.WardrobeItem{top, bund}

	if e.IsDeadEnd(&bund, Selection{top}, wardrobe) {
		t.Error("absence of stock must not count as a dead end")
	}
}

func TestRankCandidates_AscendingStableOrder(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige", "Grå", "Brun"},
	})

	// b-beige scores 0+0, b-gra and b-gra2 both score 1+0, b-brun 2+0.
	mk := func(id, color string) models.WardrobeItem {
		return item(id, models.CategoryBottom, color, map[models.Category][]string{
			models.CategoryTop: {"Navy"},
		})
	}
	candidates := []models.WardrobeItem{
		mk("b-brun", "Brun"),
		mk("b-gra", "Grå"),
		mk("b-beige", "Beige"),
		mk("b-gra2", "Grå"),
	}

	ranked := e.RankCandidates(context.Background(), candidates, Selection{top}, nil)
	if len(ranked) != 4 {
		t.Fatalf("ranked %d candidates, want 4", len(ranked))
	}

	wantOrder := []string{"b-beige", "b-gra", "b-gra2", "b-brun"}
	for i, want := range wantOrder {
		if ranked[i].Item.ID != want {
			t.Errorf("position %d = %s, want %s", i, ranked[i].Item.ID, want)
		}
	}

	// b-gra and b-gra2 tie; enumeration order must be preserved.
	if ranked[1].Item.ID != "b-gra" || ranked[2].Item.ID != "b-gra2" {
		t.Error("tie broken against enumeration order")
	}
}

func TestRankCandidates_DropsInvalid(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	good := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})
	bad := item("b2", models.CategoryBottom, "Rød", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{bad, good}, Selection{top}, nil)
	if len(ranked) != 1 || ranked[0].Item.ID != "b1" {
		t.Fatalf("ranked = %+v, want only b1", ranked)
	}
}

func TestRankCandidates_WeatherPenalty(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})

	worn := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})
	avg := 10.0
	worn.AvgTemp = &avg
	worn.UsageCount = 3

	fresh := item("b2", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	feels := 15.0
	weather := &models.WeatherSnapshot{FeelsLikeAvg: &feels}

	ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{worn, fresh}, Selection{top}, weather)
	if len(ranked) != 2 {
		t.Fatalf("ranked %d candidates, want 2", len(ranked))
	}

	// The never-worn item carries no penalty and ranks first.
	if ranked[0].Item.ID != "b2" {
		t.Errorf("first = %s, want b2 (no weather penalty)", ranked[0].Item.ID)
	}

	// |15 - 10| * 0.5 = 2.5 for the worn item.
	var wornScored *ScoredCandidate
	for i := range ranked {
		if ranked[i].Item.ID == "b1" {
			wornScored = &ranked[i]
		}
	}
	if wornScored == nil {
		t.Fatal("worn item missing from ranking")
	}
	if wornScored.Breakdown.WeatherPenalty != 2.5 {
		t.Errorf("WeatherPenalty = %f, want 2.5", wornScored.Breakdown.WeatherPenalty)
	}
}

func TestRankCandidates_MissingWeatherIsNeutral(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	worn := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})
	avg := 10.0
	worn.AvgTemp = &avg

	ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{worn}, Selection{top}, nil)
	if len(ranked) != 1 {
		t.Fatal("expected one ranked candidate")
	}
	if ranked[0].Breakdown.WeatherPenalty != 0 {
		t.Errorf("WeatherPenalty = %f, want 0 without weather data", ranked[0].Breakdown.WeatherPenalty)
	}
}

func TestRankCandidates_SubsetSuccessBonus(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	// {t1,b1} was never approved on its own, but it is a subset of the
	// approved three-piece outfit: the bonus still applies.
	e.SetHistoryProvider(&fakeHistory{
		approved: [][]string{{"t1", "b1", "s1"}},
	})

	ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{bund}, Selection{top}, nil)
	if len(ranked) != 1 {
		t.Fatal("expected one ranked candidate")
	}
	if ranked[0].Breakdown.HistoryAdjustment != -e.config.SuccessBonus {
		t.Errorf("HistoryAdjustment = %f, want %f", ranked[0].Breakdown.HistoryAdjustment, -e.config.SuccessBonus)
	}
	if ranked[0].Score != -e.config.SuccessBonus {
		t.Errorf("Score = %f, want %f", ranked[0].Score, -e.config.SuccessBonus)
	}
}

func TestRankCandidates_ExactRejectionOnly(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	t.Run("exact match penalized", func(t *testing.T) {
		e.SetHistoryProvider(&fakeHistory{
			rejected: map[string]bool{models.OutfitKey([]string{"t1", "b1"}): true},
		})

		ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{bund}, Selection{top}, nil)
		if ranked[0].Breakdown.HistoryAdjustment != e.config.RejectionPenalty {
			t.Errorf("HistoryAdjustment = %f, want %f", ranked[0].Breakdown.HistoryAdjustment, e.config.RejectionPenalty)
		}
	})

	t.Run("superset of rejected set not penalized", func(t *testing.T) {
		// Only {t1} was rejected; {t1,b1} is a different exact set.
		e.SetHistoryProvider(&fakeHistory{
			rejected: map[string]bool{models.OutfitKey([]string{"t1"}): true},
		})

		ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{bund}, Selection{top}, nil)
		if ranked[0].Breakdown.HistoryAdjustment != 0 {
			t.Errorf("HistoryAdjustment = %f, want 0", ranked[0].Breakdown.HistoryAdjustment)
		}
	})
}

func TestRankCandidates_HistoryErrorIsNeutral(t *testing.T) {
	e := newTestEngine(t)
	e.SetHistoryProvider(&fakeHistory{err: errors.New("store unavailable")})

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop: {"Navy"},
	})

	ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{bund}, Selection{top}, nil)
	if len(ranked) != 1 {
		t.Fatal("history errors must not drop candidates")
	}
	if ranked[0].Breakdown.HistoryAdjustment != 0 {
		t.Errorf("HistoryAdjustment = %f, want 0 on provider error", ranked[0].Breakdown.HistoryAdjustment)
	}
}

func TestRankCandidates_TopPickFlag(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige", "Sort", "Grå", "Brun"},
	})
	mk := func(id, color string) models.WardrobeItem {
		return item(id, models.CategoryBottom, color, map[models.Category][]string{
			models.CategoryTop: {"Navy"},
		})
	}

	ranked := e.RankCandidates(context.Background(),
		[]models.WardrobeItem{mk("close", "Beige"), mk("far", "Brun")},
		Selection{top}, nil)
	if len(ranked) != 2 {
		t.Fatal("expected two ranked candidates")
	}

	if !ranked[0].Breakdown.TopPick {
		t.Error("score 0 candidate should be a top pick")
	}
	if ranked[1].Breakdown.TopPick {
		t.Error("score 3 candidate should not be a top pick")
	}
}

func TestRankCandidates_NoTopPickOnEmptySelection(t *testing.T) {
	e := newTestEngine(t)

	candidate := item("t1", models.CategoryTop, "Navy", nil)
	ranked := e.RankCandidates(context.Background(), []models.WardrobeItem{candidate}, nil, nil)
	if len(ranked) != 1 {
		t.Fatal("expected one ranked candidate")
	}
	if ranked[0].Breakdown.TopPick {
		t.Error("top pick must not trigger on an empty selection")
	}
}

func TestStyleScore(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryBottom: {"Beige"},
		models.CategoryShoes:  {"Brun"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryTop:   {"Sort", "Navy"},
		models.CategoryShoes: {"Sort"},
	})
	shoes := item("s1", models.CategoryShoes, "Brun", map[models.Category][]string{
		models.CategoryTop:    {"Navy"},
		models.CategoryBottom: {"Beige"},
	})

	t.Run("fewer than two items scores zero", func(t *testing.T) {
		if got := e.StyleScore(nil); got != 0 {
			t.Errorf("StyleScore(nil) = %f, want 0", got)
		}
		if got := e.StyleScore(Selection{top}); got != 0 {
			t.Errorf("single item = %f, want 0", got)
		}
	})

	t.Run("compatible pair averages pairwise score", func(t *testing.T) {
		// t1↔b1: Beige at 0 + Navy at 1 = 1.
		if got := e.StyleScore(Selection{top, bund}); got != 1 {
			t.Errorf("StyleScore = %f, want 1", got)
		}
	})

	t.Run("incompatible pair substitutes penalty", func(t *testing.T) {
		// t1↔b1 = 1, t1↔s1 = 0, b1↔s1 incompatible (b1 wants Sort
		// shoes) → penalty 10. Average = 11/3.
		got := e.StyleScore(Selection{top, bund, shoes})
		want := (1.0 + 0.0 + e.config.IncompatiblePairPenalty) / 3.0
		if got != want {
			t.Errorf("StyleScore = %f, want %f", got, want)
		}
	})
}

func TestInspirationColors(t *testing.T) {
	e := newTestEngine(t)

	top := item("t1", models.CategoryTop, "Navy", map[models.Category][]string{
		models.CategoryShoes: {"Sort", "Brun", "Hvid"},
	})
	bund := item("b1", models.CategoryBottom, "Beige", map[models.Category][]string{
		models.CategoryShoes: {"Brun", "Sort"},
	})

	t.Run("intersection sorted", func(t *testing.T) {
		got := e.InspirationColors(Selection{top, bund}, models.CategoryShoes)
		if len(got) != 2 || got[0] != "Brun" || got[1] != "Sort" {
			t.Errorf("InspirationColors = %v, want [Brun Sort]", got)
		}
	})

	t.Run("empty selection returns nil", func(t *testing.T) {
		if got := e.InspirationColors(nil, models.CategoryShoes); got != nil {
			t.Errorf("InspirationColors(empty) = %v, want nil", got)
		}
	})

	t.Run("no agreement returns nil", func(t *testing.T) {
		loner := item("o1", models.CategoryOuterwear, "Sort", map[models.Category][]string{
			models.CategoryShoes: {"Rød"},
		})
		if got := e.InspirationColors(Selection{top, loner}, models.CategoryShoes); got != nil {
			t.Errorf("InspirationColors = %v, want nil", got)
		}
	})

	t.Run("duplicate list entries count once per item", func(t *testing.T) {
		// A list that accumulated "Sort" twice must not outvote an item
		// that never allows it.
		doubled := item("t2", models.CategoryTop, "Navy", map[models.Category][]string{
			models.CategoryShoes: {"Sort", "Sort", "Brun"},
		})
		other := item("b2", models.CategoryBottom, "Beige", map[models.Category][]string{
			models.CategoryShoes: {"Brun"},
		})
		got := e.InspirationColors(Selection{doubled, other}, models.CategoryShoes)
		if len(got) != 1 || got[0] != "Brun" {
			t.Errorf("InspirationColors = %v, want [Brun]", got)
		}
	})
}
