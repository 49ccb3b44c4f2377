package models

import (
	"strings"
	"time"
)

// Sex of the person, as used by body-composition formulas
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel determines the TDEE multiplier
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityVery      ActivityLevel = "very"
)

// GoalType is the closed set of supported diet goals
type GoalType string

const (
	GoalBuildMuscle GoalType = "build_muscle"
	GoalLoseFat     GoalType = "lose_fat"
	GoalMaintain    GoalType = "maintain"
)

// Goal combines the goal type with the lose-fat payload.
// TargetDate and TargetWeightKg are only meaningful for GoalLoseFat:
// together they size the daily deficit. A zero TargetDate falls back
// to a flat percentage cut.
type Goal struct {
	Type           GoalType
	TargetWeightKg float64
	TargetDate     time.Time
}

// Person holds the physiological inputs of the energy model
type Person struct {
	Sex               Sex
	Age               int
	BodyWeightKg      float64
	BodyFatPercentage float64
	Activity          ActivityLevel
}

// MacroPercentages is the desired calorie split across macros.
// Values are percentages in [0,100]; the caller is responsible for
// making them sum to 100, no renormalization happens downstream.
type MacroPercentages struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// Nutrient is immutable reference data for one vitamin or mineral
type Nutrient struct {
	Name string
	NRV  float64 // reference daily amount, >0
	Unit string
}

// Nutrients is a catalog of nutrients keyed by exact name
type Nutrients []Nutrient

// Get looks a nutrient up by exact name match
func (ns Nutrients) Get(name string) (Nutrient, bool) {
	for _, n := range ns {
		if n.Name == name {
			return n, true
		}
	}
	return Nutrient{}, false
}

// Macros holds grams of protein, carbs and fat (per 100 g for
// reference data, absolute for accumulated totals)
type Macros struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// Calories derives energy from the macro grams. Calories are never
// stored anywhere, only derived through this one formula.
func (m Macros) Calories() float64 {
	return m.Protein*4 + m.Carbs*4 + m.Fat*9
}

// Add returns the sum of two macro sets
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fat:     m.Fat + o.Fat,
	}
}

// Scale multiplies every macro by factor
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Protein: m.Protein * factor,
		Carbs:   m.Carbs * factor,
		Fat:     m.Fat * factor,
	}
}

// IngredientKind separates whole foods from supplements. Portion
// bounds and LP costs differ per kind and live in configuration.
type IngredientKind string

const (
	KindFood       IngredientKind = "food"
	KindSupplement IngredientKind = "supplement"
)

// NutrientAmount is the per-100g content of one nutrient in an ingredient
type NutrientAmount struct {
	Nutrient      Nutrient
	AmountPer100g float64
}

// Ingredient is immutable reference data: name, kind, macros per 100 g
// and nutrient content per 100 g
type Ingredient struct {
	Name      string
	Kind      IngredientKind
	Macros    Macros
	Nutrients []NutrientAmount
}

// CaloriesPer100g derives the energy density of the ingredient
func (i Ingredient) CaloriesPer100g() float64 {
	return i.Macros.Calories()
}

// NewIngredient builds an ingredient, deriving the kind from the
// legacy "Supplement" name marker. Catalogs that carry an explicit
// kind should construct Ingredient directly instead.
func NewIngredient(name string, macros Macros, nutrients []NutrientAmount) Ingredient {
	kind := KindFood
	if strings.Contains(name, "Supplement") {
		kind = KindSupplement
	}
	return Ingredient{Name: name, Kind: kind, Macros: macros, Nutrients: nutrients}
}

// Meal is a named slot of the day with its share of the calorie target
type Meal struct {
	Name           string
	KcalPercentage float64
}

// IngredientSelection is one chosen ingredient with its amount in grams
type IngredientSelection struct {
	Ingredient Ingredient
	Grams      float64
}

// Selection is the flat output of a selector: ingredient amounts
// before meal distribution
type Selection []IngredientSelection

// Add merges grams into the selection, accumulating by ingredient name
func (s Selection) Add(ing Ingredient, grams float64) Selection {
	for i := range s {
		if s[i].Ingredient.Name == ing.Name {
			s[i].Grams += grams
			return s
		}
	}
	return append(s, IngredientSelection{Ingredient: ing, Grams: grams})
}

// Macros sums the absolute macro grams over the whole selection
func (s Selection) Macros() Macros {
	var total Macros
	for _, item := range s {
		total = total.Add(item.Ingredient.Macros.Scale(item.Grams / 100))
	}
	return total
}

// Calories derives the total energy of the selection
func (s Selection) Calories() float64 {
	return s.Macros().Calories()
}

// MealPlan is one meal with its allocated ingredients
type MealPlan struct {
	Meal  Meal
	Items []IngredientSelection
}

// Macros sums the absolute macro grams allocated to the meal
func (p MealPlan) Macros() Macros {
	var total Macros
	for _, item := range p.Items {
		total = total.Add(item.Ingredient.Macros.Scale(item.Grams / 100))
	}
	return total
}

// Calories derives the energy allocated to the meal
func (p MealPlan) Calories() float64 {
	return p.Macros().Calories()
}

// Diet is the final plan: one entry per input meal, in input order
type Diet struct {
	ID    string
	Meals []MealPlan
}

// Totals sums macro grams over every meal of the diet
func (d Diet) Totals() Macros {
	var total Macros
	for _, meal := range d.Meals {
		total = total.Add(meal.Macros())
	}
	return total
}

// Calories derives the total energy of the diet
func (d Diet) Calories() float64 {
	return d.Totals().Calories()
}
