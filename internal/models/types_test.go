package models

import (
	"math"
	"testing"
)

func TestNewIngredient_KindDetection(t *testing.T) {
	tests := []struct {
		name string
		want IngredientKind
	}{
		{"Chicken Breast", KindFood},
		{"Omega-3 Supplement", KindSupplement},
		{"Vitamin D Supplement", KindSupplement},
		{"Spinach", KindFood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := NewIngredient(tt.name, Macros{}, nil)
			if ing.Kind != tt.want {
				t.Errorf("NewIngredient(%q).Kind = %v, want %v", tt.name, ing.Kind, tt.want)
			}
		})
	}
}

func TestMacros_Calories(t *testing.T) {
	m := Macros{Protein: 30, Carbs: 45, Fat: 10}
	// 30*4 + 45*4 + 10*9 = 390
	if got := m.Calories(); got != 390 {
		t.Errorf("Calories() = %v, want 390", got)
	}
}

func TestSelection_AddMergesByName(t *testing.T) {
	oats := NewIngredient("Oats", Macros{Protein: 13, Carbs: 68, Fat: 7}, nil)
	rice := NewIngredient("Brown Rice", Macros{Protein: 2.6, Carbs: 23, Fat: 0.9}, nil)

	var sel Selection
	sel = sel.Add(oats, 50)
	sel = sel.Add(rice, 100)
	sel = sel.Add(oats, 30)

	if len(sel) != 2 {
		t.Fatalf("expected 2 distinct ingredients, got %d", len(sel))
	}
	if sel[0].Ingredient.Name != "Oats" || sel[0].Grams != 80 {
		t.Errorf("Oats entry = %v g, want 80 g", sel[0].Grams)
	}
}

func TestSelection_Macros(t *testing.T) {
	oats := NewIngredient("Oats", Macros{Protein: 13, Carbs: 68, Fat: 7}, nil)

	sel := Selection{}.Add(oats, 200)
	got := sel.Macros()

	if math.Abs(got.Protein-26) > 0.001 || math.Abs(got.Carbs-136) > 0.001 || math.Abs(got.Fat-14) > 0.001 {
		t.Errorf("Macros() = %+v, want {26 136 14}", got)
	}
}

func TestDiet_TotalsMatchMealSums(t *testing.T) {
	oats := NewIngredient("Oats", Macros{Protein: 13, Carbs: 68, Fat: 7}, nil)
	eggs := NewIngredient("Eggs", Macros{Protein: 13, Carbs: 1.1, Fat: 11}, nil)

	diet := Diet{Meals: []MealPlan{
		{Meal: Meal{Name: "Breakfast", KcalPercentage: 40}, Items: []IngredientSelection{
			{Ingredient: oats, Grams: 80},
			{Ingredient: eggs, Grams: 120},
		}},
		{Meal: Meal{Name: "Dinner", KcalPercentage: 60}, Items: []IngredientSelection{
			{Ingredient: eggs, Grams: 60},
		}},
	}}

	var wantCalories float64
	for _, meal := range diet.Meals {
		wantCalories += meal.Calories()
	}
	if math.Abs(diet.Calories()-wantCalories) > 1e-9 {
		t.Errorf("Diet.Calories() = %v, want sum of meals %v", diet.Calories(), wantCalories)
	}
}
