package planner

import (
	"math"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"nutriplan/internal/config"
	"nutriplan/internal/models"
)

// LPSelector formulates ingredient selection as a linear program: one
// amount variable per catalog ingredient, minimizing a cost proxy that
// prefers whole foods over supplements, subject to a calorie window,
// macro floors and NRV floors for the configured critical nutrients.
// Non-critical nutrients are not constrained at all.
//
// The solve is a single blocking call into gonum's simplex. Any solver
// error, infeasibility included, and any solution with too few distinct
// ingredients is replaced by a deterministic hand-built fallback diet;
// callers never see an error for either condition.
type LPSelector struct {
	cfg *config.Config
	log *zap.Logger
}

// NewLPSelector creates the linear-programming strategy
func NewLPSelector(cfg *config.Config, log *zap.Logger) *LPSelector {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LPSelector{cfg: cfg, log: log}
}

// Name identifies the strategy in logs and results
func (s *LPSelector) Name() string { return "lp" }

// Select solves the LP and collects every variable above the selection
// floor, or falls back to the hand-built diet
func (s *LPSelector) Select(cat Catalog, target Target) (models.Selection, error) {
	sel, err := s.solve(cat, target)
	if err != nil {
		s.log.Warn("lp solve failed, using fallback diet", zap.Error(err))
		return s.fallback(cat), nil
	}
	if len(sel) < s.cfg.LP.MinDistinctIngredients {
		s.log.Warn("lp selection too small, using fallback diet",
			zap.Int("distinct", len(sel)),
			zap.Int("required", s.cfg.LP.MinDistinctIngredients),
		)
		return s.fallback(cat), nil
	}
	return sel, nil
}

// solve builds the standard-form model and runs the simplex.
//
// Variables are amounts in grams. Every constraint is an inequality,
// turned into an equality with one non-negative slack or surplus
// variable per row:
//
//	calories <= (1+w)*target      calories >= (1-w)*target
//	macro    >= floor*target      critical >= ratio*NRV
//	amount_i <= cap(kind_i)
func (s *LPSelector) solve(cat Catalog, target Target) (models.Selection, error) {
	n := len(cat.Ingredients)
	critical := s.criticalNutrients(cat.Nutrients)
	k := len(critical)

	rows := 2 + 3 + k + n
	cols := n + rows // one slack per row

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)

	for j, ing := range cat.Ingredients {
		c[j] = s.cfg.Portions.For(ing.Kind).LPCostPer100g / 100
	}

	w := s.cfg.LP.CalorieWindow
	row := 0

	// Calorie window
	for j, ing := range cat.Ingredients {
		a.Set(row, j, ing.CaloriesPer100g()/100)
		a.Set(row+1, j, ing.CaloriesPer100g()/100)
	}
	a.Set(row, n+row, 1) // slack
	b[row] = (1 + w) * target.Calories
	row++
	a.Set(row, n+row, -1) // surplus
	b[row] = (1 - w) * target.Calories
	row++

	// Macro floors
	for _, m := range []struct {
		per100 func(models.Macros) float64
		floor  float64
	}{
		{func(m models.Macros) float64 { return m.Protein }, target.Macros.Protein},
		{func(m models.Macros) float64 { return m.Carbs }, target.Macros.Carbs},
		{func(m models.Macros) float64 { return m.Fat }, target.Macros.Fat},
	} {
		for j, ing := range cat.Ingredients {
			a.Set(row, j, m.per100(ing.Macros)/100)
		}
		a.Set(row, n+row, -1)
		b[row] = m.floor * s.cfg.LP.MacroFloorRatio
		row++
	}

	// Critical nutrient floors
	for _, nutrient := range critical {
		for j, ing := range cat.Ingredients {
			a.Set(row, j, nutrientPer100g(ing, nutrient.Name)/100)
		}
		a.Set(row, n+row, -1)
		b[row] = nutrient.NRV * s.cfg.LP.CriticalNRVRatio
		row++
	}

	// Per-ingredient caps
	for j, ing := range cat.Ingredients {
		a.Set(row, j, 1)
		a.Set(row, n+row, 1)
		b[row] = s.cfg.Portions.For(ing.Kind).MaxGrams
		row++
	}

	_, x, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, err
	}

	var sel models.Selection
	for j, ing := range cat.Ingredients {
		if x[j] > s.cfg.LP.SelectionFloorGrams {
			sel = sel.Add(ing, math.Round(x[j]))
		}
	}
	return sel, nil
}

// criticalNutrients resolves the configured critical list against the
// catalog. Names the catalog does not carry are dropped silently, per
// the lookup contract.
func (s *LPSelector) criticalNutrients(nutrients models.Nutrients) []models.Nutrient {
	out := make([]models.Nutrient, 0, len(s.cfg.LP.CriticalNutrients))
	for _, name := range s.cfg.LP.CriticalNutrients {
		if n, ok := nutrients.Get(name); ok {
			out = append(out, n)
		}
	}
	return out
}

// nutrientPer100g returns the ingredient's content of one nutrient,
// zero when it carries none
func nutrientPer100g(ing models.Ingredient, name string) float64 {
	for _, na := range ing.Nutrients {
		if na.Nutrient.Name == name {
			return na.AmountPer100g
		}
	}
	return 0
}

// fallback synthesizes a small hand-built diet from the catalog: the
// first protein source, carb source, leafy green, fat source and
// multivitamin found in catalog order, each at a fixed sensible
// amount. Slots without a match are skipped, so a poor catalog yields
// a short (possibly empty) selection rather than an error.
func (s *LPSelector) fallback(cat Catalog) models.Selection {
	fb := s.cfg.LP.Fallback
	var sel models.Selection

	if ing, ok := firstMatch(cat.Ingredients, func(i models.Ingredient) bool {
		return i.Kind != models.KindSupplement && i.Macros.Protein > fb.ProteinFloorPer100g
	}); ok {
		sel = sel.Add(ing, fb.ProteinGrams)
	}

	if ing, ok := firstMatch(cat.Ingredients, func(i models.Ingredient) bool {
		return i.Kind != models.KindSupplement && i.Macros.Carbs > fb.CarbFloorPer100g
	}); ok {
		sel = sel.Add(ing, fb.CarbGrams)
	}

	if ing, ok := firstMatch(cat.Ingredients, func(i models.Ingredient) bool {
		return nameContainsAny(i.Name, fb.GreensWords)
	}); ok {
		sel = sel.Add(ing, fb.GreensGrams)
	}

	if ing, ok := firstMatch(cat.Ingredients, func(i models.Ingredient) bool {
		return i.Kind != models.KindSupplement && i.Macros.Fat > fb.FatFloorPer100g
	}); ok {
		sel = sel.Add(ing, fb.FatGrams)
	}

	if ing, ok := firstMatch(cat.Ingredients, func(i models.Ingredient) bool {
		return strings.Contains(strings.ToLower(i.Name), fb.MultivitaminWord)
	}); ok {
		sel = sel.Add(ing, fb.MultivitaminGrams)
	}

	return sel
}

// firstMatch returns the first ingredient in catalog order satisfying
// the predicate
func firstMatch(ingredients []models.Ingredient, pred func(models.Ingredient) bool) (models.Ingredient, bool) {
	for _, ing := range ingredients {
		if pred(ing) {
			return ing, true
		}
	}
	return models.Ingredient{}, false
}

// nameContainsAny reports whether the lowercased name contains any of
// the words
func nameContainsAny(name string, words []string) bool {
	lower := strings.ToLower(name)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
