package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"nutriplan/internal/models"
)

// Config holds every tunable table of the planner. All components take
// their tables from here instead of embedded literals, so tests can run
// with alternate numbers.
type Config struct {
	Activity ActivityConfig `yaml:"activity"`
	Goals    GoalConfig     `yaml:"goals"`
	Portions PortionConfig  `yaml:"portions"`
	Greedy   GreedyConfig   `yaml:"greedy"`
	Balancer BalancerConfig `yaml:"balancer"`
	LP       LPConfig       `yaml:"lp"`
	Meals    MealConfig     `yaml:"meals"`
}

// ActivityConfig maps activity levels to TDEE multipliers
type ActivityConfig struct {
	Multipliers map[models.ActivityLevel]float64 `yaml:"multipliers"`
}

// GoalConfig drives the goal adjustment of the calorie target
type GoalConfig struct {
	BuildMuscleFactor float64 `yaml:"build_muscle_factor"`
	LoseFatFactor     float64 `yaml:"lose_fat_factor"` // flat cut when no target date

	// Pace-based deficit sizing for lose-fat with a target date
	MinPaceKgPerWeek float64 `yaml:"min_pace_kg_per_week"`
	MaxPaceKgPerWeek float64 `yaml:"max_pace_kg_per_week"`
	KcalPerKg        float64 `yaml:"kcal_per_kg"`

	// Minimum daily intake floor, split on body weight
	MinIntakeLight    float64 `yaml:"min_intake_light"`
	MinIntakeHeavy    float64 `yaml:"min_intake_heavy"`
	LightBodyWeightKg float64 `yaml:"light_body_weight_kg"`
}

// PortionBounds are the practical dosing limits of one ingredient kind
type PortionBounds struct {
	MinGrams        float64 `yaml:"min_grams"`
	MaxGrams        float64 `yaml:"max_grams"`
	PerMealCapGrams float64 `yaml:"per_meal_cap_grams"`
	LPCostPer100g   float64 `yaml:"lp_cost_per_100g"`
}

// PortionConfig holds the bounds per ingredient kind
type PortionConfig struct {
	Food       PortionBounds `yaml:"food"`
	Supplement PortionBounds `yaml:"supplement"`
}

// For returns the bounds for an ingredient kind
func (p PortionConfig) For(kind models.IngredientKind) PortionBounds {
	if kind == models.KindSupplement {
		return p.Supplement
	}
	return p.Food
}

// GreedyConfig tunes the greedy selection loop
type GreedyConfig struct {
	CalorieStopRatio    float64 `yaml:"calorie_stop_ratio"`     // stop at this share of the target
	DensityWeight       float64 `yaml:"density_weight"`         // nutrient density score multiplier
	MacroWeight         float64 `yaml:"macro_weight"`           // macro balance score multiplier
	OverBudgetScore     float64 `yaml:"over_budget_score"`      // score for items that blow the budget
	BudgetFraction      float64 `yaml:"budget_fraction"`        // share of remaining calories per pick
	OvershootAllowance  float64 `yaml:"overshoot_allowance"`    // NRV overshoot tolerance per nutrient
	MacroBuffer         float64 `yaml:"macro_buffer"`           // stay this far inside macro headroom
	MacroFreeLimitGrams float64 `yaml:"macro_free_limit_grams"` // cap when no macro applies
	MaxIterations       int     `yaml:"max_iterations"`         // hard stall guard
}

// BalancerConfig tunes the post-selection macro refinement
type BalancerConfig struct {
	UnderTargetRatio   float64 `yaml:"under_target_ratio"`   // below this, rescale everything
	SupplementScaleCap float64 `yaml:"supplement_scale_cap"` // dampen supplement rescaling
	MaxPasses          int     `yaml:"max_passes"`
	GapToleranceGrams  float64 `yaml:"gap_tolerance_grams"`
	StepRatio          float64 `yaml:"step_ratio"` // per-pass amount increase
}

// FallbackConfig describes the hand-built diet used when the LP fails
type FallbackConfig struct {
	ProteinFloorPer100g float64  `yaml:"protein_floor_per_100g"`
	CarbFloorPer100g    float64  `yaml:"carb_floor_per_100g"`
	FatFloorPer100g     float64  `yaml:"fat_floor_per_100g"`
	GreensWords         []string `yaml:"greens_words"`
	MultivitaminWord    string   `yaml:"multivitamin_word"`
	ProteinGrams        float64  `yaml:"protein_grams"`
	CarbGrams           float64  `yaml:"carb_grams"`
	GreensGrams         float64  `yaml:"greens_grams"`
	FatGrams            float64  `yaml:"fat_grams"`
	MultivitaminGrams   float64  `yaml:"multivitamin_grams"`
}

// LPConfig tunes the linear-programming strategy
type LPConfig struct {
	CalorieWindow          float64        `yaml:"calorie_window"`    // ± share around the target
	MacroFloorRatio        float64        `yaml:"macro_floor_ratio"` // soft lower bound per macro
	CriticalNRVRatio       float64        `yaml:"critical_nrv_ratio"`
	CriticalNutrients      []string       `yaml:"critical_nutrients"`
	MinDistinctIngredients int            `yaml:"min_distinct_ingredients"`
	SelectionFloorGrams    float64        `yaml:"selection_floor_grams"` // ignore solved amounts below this
	Fallback               FallbackConfig `yaml:"fallback"`
}

// MealConfig tunes the meal distributor
type MealConfig struct {
	BreakfastWords []string `yaml:"breakfast_words"`
	DinnerWords    []string `yaml:"dinner_words"`
	DustRatio      float64  `yaml:"dust_ratio"`      // skip portions below this share
	FillStopRatio  float64  `yaml:"fill_stop_ratio"` // stop filling a meal at this share
}

// Default returns the built-in tables
func Default() *Config {
	return &Config{
		Activity: ActivityConfig{
			Multipliers: map[models.ActivityLevel]float64{
				models.ActivitySedentary: 1.2,
				models.ActivityLight:     1.375,
				models.ActivityModerate:  1.55,
				models.ActivityVery:      1.725,
			},
		},
		Goals: GoalConfig{
			BuildMuscleFactor: 1.15,
			LoseFatFactor:     0.8,
			MinPaceKgPerWeek:  0.1,
			MaxPaceKgPerWeek:  1.0,
			KcalPerKg:         7700,
			MinIntakeLight:    1200,
			MinIntakeHeavy:    1500,
			LightBodyWeightKg: 70,
		},
		Portions: PortionConfig{
			Food: PortionBounds{
				MinGrams:        5,
				MaxGrams:        500,
				PerMealCapGrams: 500,
				LPCostPer100g:   1,
			},
			Supplement: PortionBounds{
				MinGrams:        1,
				MaxGrams:        10,
				PerMealCapGrams: 5,
				LPCostPer100g:   5,
			},
		},
		Greedy: GreedyConfig{
			CalorieStopRatio:    0.95,
			DensityWeight:       10,
			MacroWeight:         5,
			OverBudgetScore:     -1000,
			BudgetFraction:      0.15,
			OvershootAllowance:  1.2,
			MacroBuffer:         0.9,
			MacroFreeLimitGrams: 500,
			MaxIterations:       200,
		},
		Balancer: BalancerConfig{
			UnderTargetRatio:   0.95,
			SupplementScaleCap: 1.5,
			MaxPasses:          10,
			GapToleranceGrams:  5,
			StepRatio:          1.05,
		},
		LP: LPConfig{
			CalorieWindow:    0.1,
			MacroFloorRatio:  0.7,
			CriticalNRVRatio: 0.5,
			CriticalNutrients: []string{
				"Vitamin D",
				"Vitamin B12",
				"Iron",
				"Calcium",
				"Omega-3 fatty acids",
			},
			MinDistinctIngredients: 5,
			SelectionFloorGrams:    1,
			Fallback: FallbackConfig{
				ProteinFloorPer100g: 20,
				CarbFloorPer100g:    20,
				FatFloorPer100g:     40,
				GreensWords:         []string{"spinach", "broccoli", "kale"},
				MultivitaminWord:    "multivitamin",
				ProteinGrams:        200,
				CarbGrams:           150,
				GreensGrams:         200,
				FatGrams:            30,
				MultivitaminGrams:   2,
			},
		},
		Meals: MealConfig{
			BreakfastWords: []string{"oat", "egg", "milk"},
			DinnerWords:    []string{"rice", "meat", "fish"},
			DustRatio:      0.10,
			FillStopRatio:  0.95,
		},
	}
}

// Load reads a YAML file over the defaults, so a partial file only
// overrides the tables it names
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
