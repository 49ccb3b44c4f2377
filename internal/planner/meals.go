package planner

import (
	"math"
	"sort"
	"strings"

	"nutriplan/internal/config"
	"nutriplan/internal/models"
)

// Distribute splits a flat selection across the meals, honoring the
// calorie percentage of each meal and the supplement placement rules.
// Meals come back in input order, one entry per input meal, and an
// ingredient may appear in several meals.
func Distribute(sel models.Selection, meals []models.Meal, targetCalories float64, cfg *config.Config) models.Diet {
	if cfg == nil {
		cfg = config.Default()
	}

	sorted := sortByMealAffinity(sel, cfg.Meals)

	remaining := make(map[string]float64, len(sorted))
	for _, item := range sorted {
		remaining[item.Ingredient.Name] = item.Grams
	}

	diet := models.Diet{Meals: make([]models.MealPlan, 0, len(meals))}
	for _, meal := range meals {
		plan := fillMeal(meal, sorted, remaining, targetCalories, cfg)
		diet.Meals = append(diet.Meals, plan)
	}

	dumpLeftovers(&diet, meals, sorted, remaining, cfg)
	return diet
}

// sortByMealAffinity orders the selection by a lexical heuristic:
// breakfast-leaning names first, dinner-leaning names last. The stable
// sort keeps everything else in selection order.
func sortByMealAffinity(sel models.Selection, cfg config.MealConfig) models.Selection {
	sorted := make(models.Selection, len(sel))
	copy(sorted, sel)
	sort.SliceStable(sorted, func(i, j int) bool {
		return mealRank(sorted[i].Ingredient.Name, cfg) < mealRank(sorted[j].Ingredient.Name, cfg)
	})
	return sorted
}

// mealRank buckets an ingredient name: 0 breakfast-leaning, 2
// dinner-leaning, 1 otherwise
func mealRank(name string, cfg config.MealConfig) int {
	lower := strings.ToLower(name)
	for _, w := range cfg.BreakfastWords {
		if strings.Contains(lower, w) {
			return 0
		}
	}
	for _, w := range cfg.DinnerWords {
		if strings.Contains(lower, w) {
			return 2
		}
	}
	return 1
}

// fillMeal walks the sorted selection and commits portions into one
// meal until it reaches its fill threshold. Committed grams come out
// of the shared remaining pool so later meals draw from what is left.
func fillMeal(
	meal models.Meal,
	sorted models.Selection,
	remaining map[string]float64,
	targetCalories float64,
	cfg *config.Config,
) models.MealPlan {
	budget := targetCalories * meal.KcalPercentage / 100
	used := 0.0
	plan := models.MealPlan{Meal: meal}

	for _, item := range sorted {
		if used >= budget*cfg.Meals.FillStopRatio {
			break
		}
		rem := remaining[item.Ingredient.Name]
		if rem <= 0 {
			continue
		}

		// Portion of this ingredient's remainder that fits the meal's
		// leftover budget. Zero-calorie items fit entirely.
		portion := 1.0
		if itemCalories := rem * item.Ingredient.CaloriesPer100g() / 100; itemCalories > 0 {
			portion = math.Min(1, (budget-used)/itemCalories)
		}
		if portion <= cfg.Meals.DustRatio {
			continue // skip dust-sized allocations
		}

		grams := rem * portion
		if item.Ingredient.Kind == models.KindSupplement {
			if capGrams := cfg.Portions.Supplement.PerMealCapGrams; grams > capGrams {
				grams = capGrams
			}
		}
		grams = math.Round(grams)
		if grams <= 0 {
			continue
		}

		plan.Items = append(plan.Items, models.IngredientSelection{Ingredient: item.Ingredient, Grams: grams})
		remaining[item.Ingredient.Name] -= grams
		used += grams * item.Ingredient.CaloriesPer100g() / 100
	}

	return plan
}

// dumpLeftovers moves whatever stayed above its minimum unit into the
// meal with the highest calorie share, first-encountered winning ties.
// Supplements still respect the per-meal cap there; excess supplement
// grams are discarded rather than overdosed into one meal.
func dumpLeftovers(
	diet *models.Diet,
	meals []models.Meal,
	sorted models.Selection,
	remaining map[string]float64,
	cfg *config.Config,
) {
	if len(meals) == 0 {
		return
	}
	biggest := 0
	for i := 1; i < len(meals); i++ {
		if meals[i].KcalPercentage > meals[biggest].KcalPercentage {
			biggest = i
		}
	}

	plan := &diet.Meals[biggest]
	for _, item := range sorted {
		rem := remaining[item.Ingredient.Name]
		bounds := cfg.Portions.For(item.Ingredient.Kind)
		if rem < bounds.MinGrams {
			continue
		}

		grams := math.Round(rem)
		if item.Ingredient.Kind == models.KindSupplement {
			already := mealGrams(*plan, item.Ingredient.Name)
			headroom := cfg.Portions.Supplement.PerMealCapGrams - already
			if grams > headroom {
				grams = headroom
			}
		}
		if grams <= 0 {
			continue
		}

		addToMeal(plan, item.Ingredient, grams)
		remaining[item.Ingredient.Name] -= grams
	}
}

// mealGrams sums the grams of one ingredient already placed in a meal
func mealGrams(plan models.MealPlan, name string) float64 {
	var total float64
	for _, item := range plan.Items {
		if item.Ingredient.Name == name {
			total += item.Grams
		}
	}
	return total
}

// addToMeal merges grams into the meal, reusing an existing entry for
// the same ingredient
func addToMeal(plan *models.MealPlan, ing models.Ingredient, grams float64) {
	for i := range plan.Items {
		if plan.Items[i].Ingredient.Name == ing.Name {
			plan.Items[i].Grams += grams
			return
		}
	}
	plan.Items = append(plan.Items, models.IngredientSelection{Ingredient: ing, Grams: grams})
}
