// Package energy converts person attributes and a diet goal into the
// daily calorie and macro targets. Every function is pure: same inputs,
// same targets.
package energy

import (
	"math"
	"time"

	"nutriplan/internal/config"
	"nutriplan/internal/models"
)

// TDEE estimates total daily energy expenditure with the Katch-McArdle
// formula: BMR = 370 + 21.6 * leanMass, scaled by the activity
// multiplier. Age and sex are part of the profile but do not enter
// this formula; lean mass already carries the body-composition signal.
func TDEE(p models.Person, cfg config.ActivityConfig) float64 {
	leanMass := p.BodyWeightKg * (1 - p.BodyFatPercentage/100)
	bmr := 370 + 21.6*leanMass

	mult, ok := cfg.Multipliers[p.Activity]
	if !ok {
		mult = cfg.Multipliers[models.ActivitySedentary]
	}
	return bmr * mult
}

// AdjustForGoal turns the TDEE into the daily calorie target.
//
// Build-muscle applies a flat surplus factor and maintain returns the
// TDEE unchanged. Lose-fat sizes the deficit from the target date when
// one is set: pace in kg/week from the weight delta over the weeks
// remaining, clamped to a safe range, converted at KcalPerKg. Without
// a usable date the flat LoseFatFactor cut applies. Either way the
// result never drops below the minimum-intake floor.
func AdjustForGoal(tdee float64, goal models.Goal, bodyWeightKg float64, cfg config.GoalConfig, now time.Time) float64 {
	switch goal.Type {
	case models.GoalBuildMuscle:
		return tdee * cfg.BuildMuscleFactor

	case models.GoalLoseFat:
		target := tdee * cfg.LoseFatFactor
		if deficit, ok := paceDeficit(goal, bodyWeightKg, cfg, now); ok {
			target = tdee - deficit
		}
		return math.Max(target, minIntake(bodyWeightKg, cfg))

	case models.GoalMaintain:
		return tdee

	default:
		return tdee
	}
}

// paceDeficit computes the daily calorie deficit implied by the goal's
// target weight and date. Returns ok=false when the payload cannot
// drive a deficit (no date, date in the past, or no weight to lose).
func paceDeficit(goal models.Goal, bodyWeightKg float64, cfg config.GoalConfig, now time.Time) (float64, bool) {
	if goal.TargetDate.IsZero() || goal.TargetWeightKg <= 0 {
		return 0, false
	}
	weeks := goal.TargetDate.Sub(now).Hours() / 24 / 7
	if weeks <= 0 {
		return 0, false
	}
	pace := (bodyWeightKg - goal.TargetWeightKg) / weeks
	if pace <= 0 {
		return 0, false
	}
	if pace > cfg.MaxPaceKgPerWeek {
		pace = cfg.MaxPaceKgPerWeek
	}
	if pace < cfg.MinPaceKgPerWeek {
		pace = cfg.MinPaceKgPerWeek
	}
	return pace * cfg.KcalPerKg / 7, true
}

// minIntake returns the daily calorie floor for the body weight
func minIntake(bodyWeightKg float64, cfg config.GoalConfig) float64 {
	if bodyWeightKg < cfg.LightBodyWeightKg {
		return cfg.MinIntakeLight
	}
	return cfg.MinIntakeHeavy
}

// TargetMacros converts the calorie target and the macro percentage
// split into gram targets: protein and carbs at 4 kcal/g, fat at
// 9 kcal/g. Percentages outside [0,100] or not summing to 100 are the
// caller's problem; no renormalization happens here.
func TargetMacros(calories float64, pct models.MacroPercentages) models.Macros {
	return models.Macros{
		Protein: calories * pct.Protein / 100 / 4,
		Carbs:   calories * pct.Carbs / 100 / 4,
		Fat:     calories * pct.Fat / 100 / 9,
	}
}
