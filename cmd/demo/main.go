package main

import (
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nutriplan/internal/config"
	"nutriplan/internal/logger"
	"nutriplan/internal/models"
	"nutriplan/internal/planner"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config overriding the built-in tables")
	flag.Parse()

	// .env is optional, it only feeds ENV for the logger
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("load config", zap.Error(err))
		}
	}

	person := models.Person{
		Sex:               models.SexMale,
		Age:               30,
		BodyWeightKg:      75,
		BodyFatPercentage: 15,
		Activity:          models.ActivityModerate,
	}
	goal := models.Goal{
		Type:           models.GoalLoseFat,
		TargetWeightKg: 70,
		TargetDate:     time.Now().AddDate(0, 3, 0),
	}
	split := models.MacroPercentages{Protein: 30, Carbs: 45, Fat: 25}

	opt := planner.NewOptimizer(cfg, log)
	diets, err := opt.RunAll(person, goal, split, sampleCatalog(),
		planner.NewGreedySelector(cfg, log),
		planner.NewLPSelector(cfg, log),
	)
	if err != nil {
		log.Fatal("optimize", zap.Error(err))
	}

	for name, diet := range diets {
		totals := diet.Totals()
		log.Info("plan summary",
			zap.String("strategy", name),
			zap.String("plan_id", diet.ID),
			zap.Float64("calories", diet.Calories()),
			zap.Float64("protein_g", totals.Protein),
			zap.Float64("carbs_g", totals.Carbs),
			zap.Float64("fat_g", totals.Fat),
		)
		for _, meal := range diet.Meals {
			for _, item := range meal.Items {
				log.Info("allocation",
					zap.String("strategy", name),
					zap.String("meal", meal.Meal.Name),
					zap.String("ingredient", item.Ingredient.Name),
					zap.Float64("grams", item.Grams),
				)
			}
		}
	}
}

// sampleCatalog builds a small in-memory catalog; amounts are grams
// per 100 g of ingredient, NRVs are grams per day
func sampleCatalog() planner.Catalog {
	vitaminC := models.Nutrient{Name: "Vitamin C", NRV: 0.09, Unit: "g"}
	vitaminD := models.Nutrient{Name: "Vitamin D", NRV: 0.00002, Unit: "g"}
	vitaminB12 := models.Nutrient{Name: "Vitamin B12", NRV: 0.0000024, Unit: "g"}
	iron := models.Nutrient{Name: "Iron", NRV: 0.014, Unit: "g"}
	calcium := models.Nutrient{Name: "Calcium", NRV: 1.0, Unit: "g"}
	magnesium := models.Nutrient{Name: "Magnesium", NRV: 0.4, Unit: "g"}
	omega3 := models.Nutrient{Name: "Omega-3 fatty acids", NRV: 1.6, Unit: "g"}

	nutrients := models.Nutrients{vitaminC, vitaminD, vitaminB12, iron, calcium, magnesium, omega3}

	ingredients := []models.Ingredient{
		models.NewIngredient("Oats", models.Macros{Protein: 13, Carbs: 68, Fat: 7}, []models.NutrientAmount{
			{Nutrient: iron, AmountPer100g: 0.0047},
			{Nutrient: magnesium, AmountPer100g: 0.177},
		}),
		models.NewIngredient("Eggs", models.Macros{Protein: 13, Carbs: 1.1, Fat: 11}, []models.NutrientAmount{
			{Nutrient: vitaminD, AmountPer100g: 0.000002},
			{Nutrient: vitaminB12, AmountPer100g: 0.0000011},
			{Nutrient: iron, AmountPer100g: 0.0018},
		}),
		models.NewIngredient("Milk", models.Macros{Protein: 3.4, Carbs: 5, Fat: 3.6}, []models.NutrientAmount{
			{Nutrient: calcium, AmountPer100g: 0.12},
			{Nutrient: vitaminB12, AmountPer100g: 0.0000005},
		}),
		models.NewIngredient("Chicken Meat", models.Macros{Protein: 31, Carbs: 0, Fat: 3.6}, []models.NutrientAmount{
			{Nutrient: vitaminB12, AmountPer100g: 0.0000003},
			{Nutrient: magnesium, AmountPer100g: 0.029},
		}),
		models.NewIngredient("Brown Rice", models.Macros{Protein: 2.6, Carbs: 23, Fat: 0.9}, []models.NutrientAmount{
			{Nutrient: magnesium, AmountPer100g: 0.043},
		}),
		models.NewIngredient("Oily Fish", models.Macros{Protein: 20, Carbs: 0, Fat: 13}, []models.NutrientAmount{
			{Nutrient: vitaminD, AmountPer100g: 0.000011},
			{Nutrient: vitaminB12, AmountPer100g: 0.0000032},
			{Nutrient: omega3, AmountPer100g: 2.2},
		}),
		models.NewIngredient("Spinach", models.Macros{Protein: 2.9, Carbs: 3.6, Fat: 0.4}, []models.NutrientAmount{
			{Nutrient: vitaminC, AmountPer100g: 0.028},
			{Nutrient: iron, AmountPer100g: 0.0027},
			{Nutrient: calcium, AmountPer100g: 0.099},
			{Nutrient: magnesium, AmountPer100g: 0.079},
		}),
		models.NewIngredient("Broccoli", models.Macros{Protein: 2.8, Carbs: 6.6, Fat: 0.4}, []models.NutrientAmount{
			{Nutrient: vitaminC, AmountPer100g: 0.089},
			{Nutrient: calcium, AmountPer100g: 0.047},
		}),
		models.NewIngredient("Olive Oil", models.Macros{Protein: 0, Carbs: 0, Fat: 100}, nil),
		models.NewIngredient("Almonds", models.Macros{Protein: 21, Carbs: 22, Fat: 49}, []models.NutrientAmount{
			{Nutrient: calcium, AmountPer100g: 0.269},
			{Nutrient: magnesium, AmountPer100g: 0.270},
			{Nutrient: iron, AmountPer100g: 0.0037},
		}),
		models.NewIngredient("Multivitamin Supplement", models.Macros{Protein: 0, Carbs: 0.5, Fat: 0}, []models.NutrientAmount{
			{Nutrient: vitaminC, AmountPer100g: 2.5},
			{Nutrient: vitaminD, AmountPer100g: 0.0005},
			{Nutrient: vitaminB12, AmountPer100g: 0.00008},
			{Nutrient: iron, AmountPer100g: 0.3},
			{Nutrient: calcium, AmountPer100g: 5},
			{Nutrient: magnesium, AmountPer100g: 3},
		}),
		models.NewIngredient("Omega-3 Supplement", models.Macros{Protein: 0, Carbs: 0, Fat: 100}, []models.NutrientAmount{
			{Nutrient: omega3, AmountPer100g: 30},
			{Nutrient: vitaminD, AmountPer100g: 0.00025},
		}),
	}

	meals := []models.Meal{
		{Name: "Breakfast", KcalPercentage: 25},
		{Name: "Lunch", KcalPercentage: 40},
		{Name: "Dinner", KcalPercentage: 35},
	}

	return planner.Catalog{Nutrients: nutrients, Ingredients: ingredients, Meals: meals}
}
