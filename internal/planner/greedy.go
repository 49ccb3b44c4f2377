package planner

import (
	"math"

	"go.uber.org/zap"

	"nutriplan/internal/config"
	"nutriplan/internal/models"
	"nutriplan/internal/tracker"
)

// GreedySelector picks ingredients one at a time by nutrient density
// and macro balance until either every nutrient reaches its NRV or the
// calorie budget is nearly spent. Coverage of all nutrients is not
// guaranteed: the loop stops on the calorie ceiling first.
type GreedySelector struct {
	cfg *config.Config
	log *zap.Logger
}

// NewGreedySelector creates the greedy strategy
func NewGreedySelector(cfg *config.Config, log *zap.Logger) *GreedySelector {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GreedySelector{cfg: cfg, log: log}
}

// Name identifies the strategy in logs and results
func (s *GreedySelector) Name() string { return "greedy" }

// Select runs the greedy loop over the catalog. Ledgers are created
// fresh here and never shared, so concurrent calls need no
// coordination. An empty catalog yields an empty selection.
func (s *GreedySelector) Select(cat Catalog, target Target) (models.Selection, error) {
	nutrients := tracker.NewNutrientLedger(cat.Nutrients)
	macros := &tracker.MacroLedger{}
	var sel models.Selection

	// Ingredients whose computed amount came out non-positive are
	// excluded for the rest of the run, otherwise the loop could
	// re-pick them forever.
	excluded := make(map[string]bool)

	for iter := 0; iter < s.cfg.Greedy.MaxIterations; iter++ {
		if nutrients.AllCovered() {
			break
		}
		if macros.Calories() >= target.Calories*s.cfg.Greedy.CalorieStopRatio {
			break
		}

		best, ok := s.pickBest(cat.Ingredients, nutrients, macros, target, excluded)
		if !ok {
			break
		}

		grams := s.optimalAmount(best, nutrients, macros, target)
		if grams > 0 {
			// Repeated picks accumulate; the per-ingredient ceiling
			// holds for the total, not the single portion.
			maxGrams := s.cfg.Portions.For(best.Kind).MaxGrams
			if already := selectedGrams(sel, best.Name); already+grams > maxGrams {
				grams = math.Round(maxGrams - already)
			}
		}
		if grams <= 0 {
			excluded[best.Name] = true
			continue
		}

		sel = sel.Add(best, grams)
		nutrients.Add(best, grams)
		macros.Add(best, grams)
	}

	sel = s.balance(sel, target)

	s.log.Debug("greedy selection finished",
		zap.Int("ingredients", len(sel)),
		zap.Float64("calories", sel.Calories()),
		zap.Float64("target_calories", target.Calories),
	)
	return sel, nil
}

// selectedGrams returns the grams already selected for an ingredient
func selectedGrams(sel models.Selection, name string) float64 {
	for _, item := range sel {
		if item.Ingredient.Name == name {
			return item.Grams
		}
	}
	return 0
}

// pickBest scores every non-excluded candidate and returns the winner.
// Ties keep the first ingredient in catalog order, so the result is
// deterministic for a fixed catalog.
func (s *GreedySelector) pickBest(
	candidates []models.Ingredient,
	nutrients *tracker.NutrientLedger,
	macros *tracker.MacroLedger,
	target Target,
	excluded map[string]bool,
) (models.Ingredient, bool) {
	best := models.Ingredient{}
	bestScore := math.Inf(-1)
	found := false

	for _, ing := range candidates {
		if excluded[ing.Name] {
			continue
		}
		score := s.score(ing, nutrients, macros, target)
		if score > bestScore {
			best = ing
			bestScore = score
			found = true
		}
	}
	return best, found
}

// score combines nutrient density over still-deficient nutrients with
// the macro balance score. Candidates whose 100 g portion alone would
// blow the remaining budget get a prohibitive flat score instead.
func (s *GreedySelector) score(
	ing models.Ingredient,
	nutrients *tracker.NutrientLedger,
	macros *tracker.MacroLedger,
	target Target,
) float64 {
	cal := ing.CaloriesPer100g()
	if cal > target.Calories-macros.Calories() {
		return s.cfg.Greedy.OverBudgetScore
	}

	var density float64
	if cal > 0 { // zero-calorie ingredients score no density
		for _, na := range ing.Nutrients {
			pct := nutrients.Percentage(na.Nutrient.Name)
			if pct >= 100 {
				continue
			}
			density += na.AmountPer100g / cal * (100 - pct)
		}
	}

	return density*s.cfg.Greedy.DensityWeight +
		s.macroBalanceScore(ing, macros.Totals(), target.Macros)*s.cfg.Greedy.MacroWeight
}

// macroBalanceScore rewards ingredients whose macro ratio pushes the
// accumulated totals toward the target ratio. With nothing accumulated
// yet every ingredient gets a neutral first-pick boost.
func (s *GreedySelector) macroBalanceScore(ing models.Ingredient, current, target models.Macros) float64 {
	currentSum := current.Protein + current.Carbs + current.Fat
	if currentSum == 0 {
		return 1
	}
	ingSum := ing.Macros.Protein + ing.Macros.Carbs + ing.Macros.Fat
	targetSum := target.Protein + target.Carbs + target.Fat
	if ingSum == 0 || targetSum == 0 {
		return 0
	}

	var score float64
	for _, m := range []struct{ cur, tgt, ing float64 }{
		{current.Protein, target.Protein, ing.Macros.Protein},
		{current.Carbs, target.Carbs, ing.Macros.Carbs},
		{current.Fat, target.Fat, ing.Macros.Fat},
	} {
		curRatio := m.cur / currentSum
		tgtRatio := m.tgt / targetSum
		ingRatio := m.ing / ingSum
		if curRatio < tgtRatio && ingRatio > curRatio {
			score += (tgtRatio - curRatio) * ingRatio
		}
	}
	return score
}

// optimalAmount sizes the portion: start from a fixed share of the
// remaining calorie budget, cap so no deficient nutrient overshoots
// its NRV beyond the allowance, cap by macro headroom, then clamp to
// the practical bounds of the ingredient kind. A non-positive result
// means the ingredient cannot be added at all.
func (s *GreedySelector) optimalAmount(
	ing models.Ingredient,
	nutrients *tracker.NutrientLedger,
	macros *tracker.MacroLedger,
	target Target,
) float64 {
	bounds := s.cfg.Portions.For(ing.Kind)

	remaining := target.Calories - macros.Calories()
	cal := ing.CaloriesPer100g()

	amount := bounds.MaxGrams
	if cal > 0 {
		amount = remaining * s.cfg.Greedy.BudgetFraction / (cal / 100)
	}

	for _, na := range ing.Nutrients {
		if na.AmountPer100g <= 0 {
			continue
		}
		pct := nutrients.Percentage(na.Nutrient.Name)
		if pct >= 100 {
			continue
		}
		needed := na.Nutrient.NRV - nutrients.Consumed(na.Nutrient.Name)
		ceiling := needed / na.AmountPer100g * 100 * s.cfg.Greedy.OvershootAllowance
		if ceiling < amount {
			amount = ceiling
		}
	}

	if limit := s.macroHeadroom(ing, macros.Totals(), target.Macros); limit < amount {
		amount = limit
	}

	if amount <= 0 {
		return 0
	}
	if amount < bounds.MinGrams {
		amount = bounds.MinGrams
	}
	if amount > bounds.MaxGrams {
		amount = bounds.MaxGrams
	}
	return math.Round(amount)
}

// macroHeadroom returns the largest portion addable without exceeding
// any macro target, each macro's limit computed independently and
// combined via minimum, kept inside a safety buffer. Ingredients that
// contribute to no macro get the flat macro-free limit.
func (s *GreedySelector) macroHeadroom(ing models.Ingredient, current, target models.Macros) float64 {
	limit := math.Inf(1)
	contributes := false

	for _, m := range []struct{ per100, cur, tgt float64 }{
		{ing.Macros.Protein, current.Protein, target.Protein},
		{ing.Macros.Carbs, current.Carbs, target.Carbs},
		{ing.Macros.Fat, current.Fat, target.Fat},
	} {
		if m.per100 <= 0 {
			continue
		}
		contributes = true
		if l := (m.tgt - m.cur) / m.per100 * 100; l < limit {
			limit = l
		}
	}

	if !contributes {
		return s.cfg.Greedy.MacroFreeLimitGrams
	}
	return limit * s.cfg.Greedy.MacroBuffer
}
