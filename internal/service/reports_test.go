package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudkitchenpro/backend/internal/models"
)

func reportRecipe(chef, title, cuisine, difficulty string, prep, servings int) models.Recipe {
	return models.Recipe{
		Chef:        chef,
		Title:       title,
		CuisineType: cuisine,
		Difficulty:  difficulty,
		PrepTime:    prep,
		Servings:    servings,
		Ingredients: models.JSONBStringArray{"flour", "eggs"},
	}
}

func TestSummarize(t *testing.T) {
	recipes := []models.Recipe{
		reportRecipe("Alice", "Carbonara", "Italian", "Medium", 30, 4),
		reportRecipe("Alice", "Risotto", "Italian", "Hard", 45, 2),
		reportRecipe("Bob", "Crepes", "French", "Easy", 20, 6),
	}
	cuisines := CuisineDistribution(recipes)
	summary := Summarize(recipes, cuisines)

	assert.Equal(t, 3, summary.TotalRecipes)
	assert.Equal(t, 32, summary.AvgPrepTime)
	assert.Equal(t, 4, summary.AvgServings)
	assert.Equal(t, []string{"Italian", "French"}, summary.CuisineTypes)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, nil)
	assert.Equal(t, 0, summary.TotalRecipes)
	assert.Equal(t, 0, summary.AvgPrepTime)
	assert.Empty(t, summary.CuisineTypes)
}

func TestCuisineDistribution(t *testing.T) {
	recipes := []models.Recipe{
		reportRecipe("Alice", "Carbonara", "Italian", "Medium", 30, 4),
		reportRecipe("Alice", "Risotto", "Italian", "Hard", 50, 2),
		reportRecipe("Bob", "Crepes", "French", "Easy", 20, 6),
	}

	stats := CuisineDistribution(recipes)
	require.Len(t, stats, 2)
	assert.Equal(t, CuisineStat{Cuisine: "Italian", Count: 2, AvgPrep: 40, Pct: 67}, stats[0])
	assert.Equal(t, CuisineStat{Cuisine: "French", Count: 1, AvgPrep: 20, Pct: 33}, stats[1])
}

func TestDifficultyAnalysis(t *testing.T) {
	recipes := []models.Recipe{
		reportRecipe("Alice", "Carbonara", "Italian", "Medium", 30, 4),
		reportRecipe("Alice", "Risotto", "Italian", "Medium", 50, 2),
		reportRecipe("Bob", "Crepes", "French", "Easy", 20, 6),
	}

	stats := DifficultyAnalysis(recipes)
	require.Len(t, stats, 2)
	assert.Equal(t, DifficultyStat{Difficulty: "Medium", Count: 2, AvgPrep: 40, AvgServings: 3, Pct: 67}, stats[0])
	assert.Equal(t, DifficultyStat{Difficulty: "Easy", Count: 1, AvgPrep: 20, AvgServings: 6, Pct: 33}, stats[1])
}

func TestTopChefs(t *testing.T) {
	recipes := []models.Recipe{
		reportRecipe("Alice", "Carbonara", "Italian", "Medium", 30, 4),
		reportRecipe("Alice", "Crepes", "French", "Easy", 20, 6),
		reportRecipe("Bob", "Risotto", "Italian", "Hard", 40, 2),
		reportRecipe("Bob", "Lasagna", "Italian", "Medium", 60, 8),
		reportRecipe("Bob", "Tacos", "Mexican", "Easy", 20, 4),
	}

	stats := TopChefs(recipes)
	require.Len(t, stats, 2)

	// Bob has more recipes, so he ranks first.
	assert.Equal(t, "Bob", stats[0].Chef)
	assert.Equal(t, 3, stats[0].Recipes)
	assert.Equal(t, 40, stats[0].AvgPrepTime)
	assert.Equal(t, []string{"Italian", "Mexican"}, stats[0].Cuisines)

	// Alice's cuisines tie at one recipe each; first-seen order wins.
	assert.Equal(t, "Alice", stats[1].Chef)
	assert.Equal(t, []string{"Italian", "French"}, stats[1].Cuisines)
}

func TestTopChefsLimitsToFive(t *testing.T) {
	chefs := []string{"A", "B", "C", "D", "E", "F", "G"}
	recipes := make([]models.Recipe, 0, len(chefs))
	for _, chef := range chefs {
		recipes = append(recipes, reportRecipe(chef, "Dish", "Other", "Easy", 10, 2))
	}
	assert.Len(t, TopChefs(recipes), 5)
}

func TestPopularRecipes(t *testing.T) {
	recipes := []models.Recipe{
		reportRecipe("Alice", "Carbonara", "Italian", "Medium", 30, 4),
		reportRecipe("Bob", "  CARBONARA ", "Italian", "Hard", 50, 2),
		reportRecipe("Bob", "Crepes", "French", "Easy", 20, 6),
	}

	popular := PopularRecipes(recipes)
	require.Len(t, popular, 2)
	assert.Equal(t, PopularRecipe{Title: "carbonara", Count: 2, AvgPrep: 40}, popular[0])
}

func TestIngredientUsage(t *testing.T) {
	recipes := []models.Recipe{
		{Ingredients: models.JSONBStringArray{"Flour", "eggs "}},
		{Ingredients: models.JSONBStringArray{"flour", "milk"}},
	}

	usage := IngredientUsage(recipes)
	require.Len(t, usage, 3)
	assert.Equal(t, IngredientCount{Ingredient: "flour", Count: 2}, usage[0])
}

func TestSeasonalTrends(t *testing.T) {
	at := func(year int, month time.Month) time.Time {
		return time.Date(year, month, 5, 0, 0, 0, 0, time.UTC)
	}
	recipes := []models.Recipe{
		{CreatedAt: at(2026, time.January), CuisineType: "Italian"},
		{CreatedAt: at(2026, time.January), CuisineType: "Italian"},
		{CreatedAt: at(2026, time.February), CuisineType: "French"},
		{CreatedAt: at(2025, time.December), CuisineType: "Asian"},
	}

	trends := SeasonalTrends(recipes)
	require.Len(t, trends, 3)
	assert.Equal(t, SeasonalTrend{Year: 2026, Month: 2, Cuisine: "French", Count: 1}, trends[0])
	assert.Equal(t, SeasonalTrend{Year: 2026, Month: 1, Cuisine: "Italian", Count: 2}, trends[1])
	assert.Equal(t, SeasonalTrend{Year: 2025, Month: 12, Cuisine: "Asian", Count: 1}, trends[2])
}

func TestCostReports(t *testing.T) {
	matcher := SubstringMatcher{}
	items := []models.InventoryItem{
		{IngredientName: "Eggs", Cost: 2.50, Quantity: 12},
		{IngredientName: "Flour", Cost: 1.25, Quantity: 4},
	}
	recipes := []models.Recipe{
		{Title: "Omelette", Ingredients: models.JSONBStringArray{"3 eggs", "butter"}},
		{Title: "Bread", Ingredients: models.JSONBStringArray{"flour", "yeast", "eggs"}},
		{Title: "Salad", Ingredients: models.JSONBStringArray{"lettuce"}},
	}

	reports := CostReports(recipes, items, matcher)
	require.Len(t, reports, 3)

	// Unit cost only: quantity on hand never multiplies in.
	assert.Equal(t, CostReport{Title: "Bread", EstimatedCost: 3.75}, reports[0])
	assert.Equal(t, CostReport{Title: "Omelette", EstimatedCost: 2.5}, reports[1])
	assert.Equal(t, CostReport{Title: "Salad", EstimatedCost: 0}, reports[2])
}
