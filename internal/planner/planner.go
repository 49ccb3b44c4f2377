// Package planner computes a daily diet plan: it selects per-ingredient
// amounts that jointly target calories, macros and NRV coverage, then
// partitions the result across meals. Two interchangeable selection
// strategies exist, a greedy nutrient-density loop and a linear
// program, both feeding the same meal distributor.
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nutriplan/internal/config"
	"nutriplan/internal/energy"
	"nutriplan/internal/models"
)

// Catalog is the already-materialized reference data one optimization
// runs over. The planner trusts it: names are non-empty, NRVs are
// positive, macro and nutrient amounts are non-negative.
type Catalog struct {
	Nutrients   models.Nutrients
	Ingredients []models.Ingredient
	Meals       []models.Meal
}

// Target is the output of the energy model: daily calories and macro
// grams the selectors aim for
type Target struct {
	Calories float64
	Macros   models.Macros
}

// Strategy selects per-ingredient amounts for a target. Strategies are
// interchangeable: every implementation satisfies the same contract so
// callers can swap freely.
type Strategy interface {
	Name() string
	Select(cat Catalog, target Target) (models.Selection, error)
}

// Optimizer glues the energy model, a selection strategy and the meal
// distributor into the full optimize call. It is stateless across
// calls: every run works on private ledgers, so concurrent Optimize
// calls need no coordination.
type Optimizer struct {
	cfg *config.Config
	log *zap.Logger
}

// NewOptimizer creates an optimizer. A nil config means the built-in
// tables, a nil logger stays silent.
func NewOptimizer(cfg *config.Config, log *zap.Logger) *Optimizer {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimizer{cfg: cfg, log: log}
}

// TargetFor runs the energy model for a person and goal
func (o *Optimizer) TargetFor(person models.Person, goal models.Goal, pct models.MacroPercentages) Target {
	tdee := energy.TDEE(person, o.cfg.Activity)
	calories := energy.AdjustForGoal(tdee, goal, person.BodyWeightKg, o.cfg.Goals, time.Now())
	return Target{
		Calories: calories,
		Macros:   energy.TargetMacros(calories, pct),
	}
}

// Optimize computes the full diet plan for one person with one
// strategy. An empty catalog produces a diet whose meals carry no
// ingredients; callers should treat that as an insufficient catalog,
// not an error.
func (o *Optimizer) Optimize(
	person models.Person,
	goal models.Goal,
	pct models.MacroPercentages,
	cat Catalog,
	strategy Strategy,
) (models.Diet, error) {
	target := o.TargetFor(person, goal, pct)

	sel, err := strategy.Select(cat, target)
	if err != nil {
		return models.Diet{}, fmt.Errorf("%s selection: %w", strategy.Name(), err)
	}

	diet := Distribute(sel, cat.Meals, target.Calories, o.cfg)
	diet.ID = uuid.NewString()

	o.log.Info("diet plan computed",
		zap.String("plan_id", diet.ID),
		zap.String("strategy", strategy.Name()),
		zap.Float64("target_calories", target.Calories),
		zap.Float64("plan_calories", diet.Calories()),
		zap.Int("meals", len(diet.Meals)),
	)
	return diet, nil
}

// RunAll executes several strategies concurrently over the same inputs
// and returns one diet per strategy name. Each run owns its ledgers,
// so no locking is involved.
func (o *Optimizer) RunAll(
	person models.Person,
	goal models.Goal,
	pct models.MacroPercentages,
	cat Catalog,
	strategies ...Strategy,
) (map[string]models.Diet, error) {
	diets := make([]models.Diet, len(strategies))

	var g errgroup.Group
	for i, strategy := range strategies {
		i, strategy := i, strategy
		g.Go(func() error {
			diet, err := o.Optimize(person, goal, pct, cat, strategy)
			if err != nil {
				return err
			}
			diets[i] = diet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]models.Diet, len(strategies))
	for i, strategy := range strategies {
		out[strategy.Name()] = diets[i]
	}
	return out, nil
}
