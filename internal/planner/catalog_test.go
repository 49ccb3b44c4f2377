package planner

import "nutriplan/internal/models"

// Shared fixture catalog for the planner tests. Amounts are grams per
// 100 g, NRVs grams per day.
var (
	tVitaminC = models.Nutrient{Name: "Vitamin C", NRV: 0.09, Unit: "g"}
	tVitaminD = models.Nutrient{Name: "Vitamin D", NRV: 0.00002, Unit: "g"}
	tB12      = models.Nutrient{Name: "Vitamin B12", NRV: 0.0000024, Unit: "g"}
	tIron     = models.Nutrient{Name: "Iron", NRV: 0.014, Unit: "g"}
	tCalcium  = models.Nutrient{Name: "Calcium", NRV: 1.0, Unit: "g"}
	tOmega3   = models.Nutrient{Name: "Omega-3 fatty acids", NRV: 1.6, Unit: "g"}
)

func testNutrients() models.Nutrients {
	return models.Nutrients{tVitaminC, tVitaminD, tB12, tIron, tCalcium, tOmega3}
}

func testIngredients() []models.Ingredient {
	return []models.Ingredient{
		models.NewIngredient("Oats", models.Macros{Protein: 13, Carbs: 68, Fat: 7}, []models.NutrientAmount{
			{Nutrient: tIron, AmountPer100g: 0.0047},
		}),
		models.NewIngredient("Eggs", models.Macros{Protein: 13, Carbs: 1.1, Fat: 11}, []models.NutrientAmount{
			{Nutrient: tVitaminD, AmountPer100g: 0.000002},
			{Nutrient: tB12, AmountPer100g: 0.0000011},
		}),
		models.NewIngredient("Milk", models.Macros{Protein: 3.4, Carbs: 5, Fat: 3.6}, []models.NutrientAmount{
			{Nutrient: tCalcium, AmountPer100g: 0.12},
			{Nutrient: tB12, AmountPer100g: 0.0000005},
		}),
		models.NewIngredient("Chicken Meat", models.Macros{Protein: 31, Carbs: 0, Fat: 3.6}, []models.NutrientAmount{
			{Nutrient: tB12, AmountPer100g: 0.0000003},
		}),
		models.NewIngredient("Brown Rice", models.Macros{Protein: 2.6, Carbs: 23, Fat: 0.9}, nil),
		models.NewIngredient("Oily Fish", models.Macros{Protein: 20, Carbs: 0, Fat: 13}, []models.NutrientAmount{
			{Nutrient: tVitaminD, AmountPer100g: 0.000011},
			{Nutrient: tB12, AmountPer100g: 0.0000032},
			{Nutrient: tOmega3, AmountPer100g: 2.2},
		}),
		models.NewIngredient("Spinach", models.Macros{Protein: 2.9, Carbs: 3.6, Fat: 0.4}, []models.NutrientAmount{
			{Nutrient: tVitaminC, AmountPer100g: 0.028},
			{Nutrient: tIron, AmountPer100g: 0.0027},
			{Nutrient: tCalcium, AmountPer100g: 0.099},
		}),
		models.NewIngredient("Olive Oil", models.Macros{Protein: 0, Carbs: 0, Fat: 100}, nil),
		models.NewIngredient("Multivitamin Supplement", models.Macros{Protein: 0, Carbs: 0.5, Fat: 0}, []models.NutrientAmount{
			{Nutrient: tVitaminC, AmountPer100g: 2.5},
			{Nutrient: tVitaminD, AmountPer100g: 0.0005},
			{Nutrient: tB12, AmountPer100g: 0.00008},
			{Nutrient: tIron, AmountPer100g: 0.3},
			{Nutrient: tCalcium, AmountPer100g: 5},
		}),
		models.NewIngredient("Omega-3 Supplement", models.Macros{Protein: 0, Carbs: 0, Fat: 1}, []models.NutrientAmount{
			{Nutrient: tOmega3, AmountPer100g: 30},
		}),
	}
}

func testMeals() []models.Meal {
	return []models.Meal{
		{Name: "Breakfast", KcalPercentage: 25},
		{Name: "Lunch", KcalPercentage: 40},
		{Name: "Dinner", KcalPercentage: 35},
	}
}

func testCatalog() Catalog {
	return Catalog{
		Nutrients:   testNutrients(),
		Ingredients: testIngredients(),
		Meals:       testMeals(),
	}
}

func testTarget() Target {
	return Target{
		Calories: 2000,
		Macros:   models.Macros{Protein: 150, Carbs: 225, Fat: 55.56},
	}
}
