package planner

import (
	"math"
	"testing"

	"nutriplan/internal/config"
	"nutriplan/internal/models"
)

func foodSelection() models.Selection {
	var sel models.Selection
	sel = sel.Add(models.NewIngredient("Chicken Meat", models.Macros{Protein: 31, Carbs: 0, Fat: 3.6}, nil), 300)
	sel = sel.Add(models.NewIngredient("Oats", models.Macros{Protein: 13, Carbs: 68, Fat: 7}, nil), 150)
	sel = sel.Add(models.NewIngredient("Brown Rice", models.Macros{Protein: 2.6, Carbs: 23, Fat: 0.9}, nil), 400)
	sel = sel.Add(models.NewIngredient("Eggs", models.Macros{Protein: 13, Carbs: 1.1, Fat: 11}, nil), 200)
	sel = sel.Add(models.NewIngredient("Olive Oil", models.Macros{Protein: 0, Carbs: 0, Fat: 100}, nil), 40)
	return sel
}

func TestDistribute_OneEntryPerMealInOrder(t *testing.T) {
	meals := testMeals()
	diet := Distribute(foodSelection(), meals, 2000, nil)

	if len(diet.Meals) != len(meals) {
		t.Fatalf("diet has %d meals, want %d", len(diet.Meals), len(meals))
	}
	for i, meal := range meals {
		if diet.Meals[i].Meal.Name != meal.Name {
			t.Errorf("meal %d = %q, want %q (input order must be preserved)", i, diet.Meals[i].Meal.Name, meal.Name)
		}
	}
}

func TestDistribute_ConservesMass(t *testing.T) {
	sel := foodSelection()
	diet := Distribute(sel, testMeals(), 2000, nil)

	want := sel.Macros()
	got := diet.Totals()

	// Rounding to whole grams may shave at most a gram per macro
	if math.Abs(got.Protein-want.Protein) > 1 ||
		math.Abs(got.Carbs-want.Carbs) > 1 ||
		math.Abs(got.Fat-want.Fat) > 1 {
		t.Errorf("diet totals %+v drifted from selection totals %+v", got, want)
	}
}

func TestDistribute_BreakfastAffinity(t *testing.T) {
	diet := Distribute(foodSelection(), testMeals(), 2000, nil)

	breakfast := diet.Meals[0]
	if len(breakfast.Items) == 0 {
		t.Fatal("breakfast got no ingredients")
	}
	// Oats and Eggs sort to the front, so breakfast starts with one
	// of the breakfast-leaning names.
	first := breakfast.Items[0].Ingredient.Name
	if first != "Oats" && first != "Eggs" {
		t.Errorf("breakfast starts with %q, want a breakfast-leaning ingredient", first)
	}
}

func TestDistribute_SupplementPerMealCap(t *testing.T) {
	var sel models.Selection
	sel = sel.Add(models.NewIngredient("Chicken Meat", models.Macros{Protein: 31, Carbs: 0, Fat: 3.6}, nil), 400)
	sel = sel.Add(models.NewIngredient("Multivitamin Supplement", models.Macros{Carbs: 0.5}, nil), 10)

	diet := Distribute(sel, testMeals(), 2000, nil)

	for _, meal := range diet.Meals {
		var grams float64
		for _, item := range meal.Items {
			if item.Ingredient.Kind == models.KindSupplement {
				grams += item.Grams
			}
		}
		if grams > 5 {
			t.Errorf("meal %q carries %v g of supplements, cap is 5 g", meal.Meal.Name, grams)
		}
	}
}

func TestDistribute_LeftoversGoToBiggestMeal(t *testing.T) {
	// One calorie-dense ingredient and a tiny target: the first fill
	// round cannot place everything, so the remainder must land in
	// the meal with the highest calorie share (Lunch, 40%).
	var sel models.Selection
	sel = sel.Add(models.NewIngredient("Almonds", models.Macros{Protein: 21, Carbs: 22, Fat: 49}, nil), 500)

	diet := Distribute(sel, testMeals(), 400, nil)

	var placed float64
	for _, meal := range diet.Meals {
		placed += mealGrams(meal, "Almonds")
	}
	if math.Abs(placed-500) > 1 {
		t.Fatalf("placed %v g of 500 g", placed)
	}

	lunch := diet.Meals[1]
	if mealGrams(lunch, "Almonds") < mealGrams(diet.Meals[0], "Almonds") {
		t.Error("leftovers should flow into the largest meal")
	}
}

func TestDistribute_NoMeals(t *testing.T) {
	diet := Distribute(foodSelection(), nil, 2000, nil)
	if len(diet.Meals) != 0 {
		t.Errorf("no input meals should mean no output meals, got %d", len(diet.Meals))
	}
}

func TestDistribute_EmptySelection(t *testing.T) {
	diet := Distribute(nil, testMeals(), 2000, nil)

	if len(diet.Meals) != 3 {
		t.Fatalf("diet has %d meals, want 3", len(diet.Meals))
	}
	for _, meal := range diet.Meals {
		if len(meal.Items) != 0 {
			t.Errorf("meal %q should be empty for an empty selection", meal.Meal.Name)
		}
	}
}

func TestMealRank(t *testing.T) {
	cfg := config.Default().Meals

	tests := []struct {
		name string
		want int
	}{
		{"Oats", 0},
		{"Eggs", 0},
		{"Milk", 0},
		{"Spinach", 1},
		{"Olive Oil", 1},
		{"Brown Rice", 2},
		{"Chicken Meat", 2},
		{"Oily Fish", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mealRank(tt.name, cfg); got != tt.want {
				t.Errorf("mealRank(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}
