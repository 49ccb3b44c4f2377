package planner

import (
	"math"

	"go.uber.org/zap"

	"nutriplan/internal/models"
)

// balance refines the selected amounts toward the macro target after
// the greedy loop converges.
//
// When the selection landed well under the calorie target everything
// is rescaled proportionally in a single pass, with supplements
// dampened and per-item ceilings enforced. Otherwise a bounded number
// of passes bumps the amounts of items dominated by whichever macro
// still has a material gap.
func (s *GreedySelector) balance(sel models.Selection, target Target) models.Selection {
	if len(sel) == 0 {
		return sel
	}

	current := sel.Macros().Calories()
	if current <= 0 {
		return sel
	}

	if current < target.Calories*s.cfg.Balancer.UnderTargetRatio {
		return s.scaleToTarget(sel, target.Calories/current)
	}

	for pass := 0; pass < s.cfg.Balancer.MaxPasses; pass++ {
		// Macro totals are recomputed from scratch each pass: the
		// per-item adjustments below invalidate any running tally.
		totals := sel.Macros()
		gaps := models.Macros{
			Protein: target.Macros.Protein - totals.Protein,
			Carbs:   target.Macros.Carbs - totals.Carbs,
			Fat:     target.Macros.Fat - totals.Fat,
		}
		tol := s.cfg.Balancer.GapToleranceGrams
		if math.Abs(gaps.Protein) < tol && math.Abs(gaps.Carbs) < tol && math.Abs(gaps.Fat) < tol {
			break
		}

		for i := range sel {
			if gapFor(dominantMacro(sel[i].Ingredient.Macros), gaps) <= tol {
				continue
			}
			bounds := s.cfg.Portions.For(sel[i].Ingredient.Kind)
			grams := math.Round(sel[i].Grams * s.cfg.Balancer.StepRatio)
			if grams > bounds.MaxGrams {
				grams = bounds.MaxGrams
			}
			sel[i].Grams = grams
		}
	}

	s.log.Debug("macro balance finished",
		zap.Float64("calories", sel.Calories()),
		zap.Float64("target_calories", target.Calories),
	)
	return sel
}

// scaleToTarget multiplies every amount by factor in one pass.
// Supplement scaling is capped so a large calorie shortfall cannot
// inflate doses past sensible limits, and every item stays under its
// per-item ceiling.
func (s *GreedySelector) scaleToTarget(sel models.Selection, factor float64) models.Selection {
	for i := range sel {
		f := factor
		bounds := s.cfg.Portions.For(sel[i].Ingredient.Kind)
		if sel[i].Ingredient.Kind == models.KindSupplement && f > s.cfg.Balancer.SupplementScaleCap {
			f = s.cfg.Balancer.SupplementScaleCap
		}
		grams := math.Round(sel[i].Grams * f)
		if grams > bounds.MaxGrams {
			grams = bounds.MaxGrams
		}
		sel[i].Grams = grams
	}
	return sel
}

// dominantMacro returns which macro the ingredient carries most of
// per 100 g
func dominantMacro(m models.Macros) string {
	switch {
	case m.Protein >= m.Carbs && m.Protein >= m.Fat:
		return "protein"
	case m.Carbs >= m.Fat:
		return "carbs"
	default:
		return "fat"
	}
}

// gapFor maps a macro name to its remaining gap in grams
func gapFor(macro string, gaps models.Macros) float64 {
	switch macro {
	case "protein":
		return gaps.Protein
	case "carbs":
		return gaps.Carbs
	default:
		return gaps.Fat
	}
}
