package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/testhelpers"
)

func TestRecipeCRUD(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleChef)
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleChef)
	recipes := NewRecipeService(db)

	t.Run("create assigns sequential business IDs", func(t *testing.T) {
		first, err := recipes.CreateRecipe(ctx, testhelpers.NewTestRecipe(alice, "Carbonara", []string{"spaghetti", "eggs", "pancetta"}))
		require.NoError(t, err)
		assert.Equal(t, "R-00001", first.RecipeID)

		second, err := recipes.CreateRecipe(ctx, testhelpers.NewTestRecipe(alice, "Risotto", []string{"rice", "stock"}))
		require.NoError(t, err)
		assert.Equal(t, "R-00002", second.RecipeID)
	})

	t.Run("duplicate title per owner is rejected", func(t *testing.T) {
		_, err := recipes.CreateRecipe(ctx, testhelpers.NewTestRecipe(alice, "Carbonara", []string{"spaghetti"}))
		assert.ErrorIs(t, err, ErrDuplicateTitle)

		// A different chef may reuse the title.
		_, err = recipes.CreateRecipe(ctx, testhelpers.NewTestRecipe(bob, "Carbonara", []string{"spaghetti"}))
		assert.NoError(t, err)
	})

	t.Run("get by business ID", func(t *testing.T) {
		recipe, err := recipes.GetRecipe(ctx, "R-00001")
		require.NoError(t, err)
		assert.Equal(t, "Carbonara", recipe.Title)

		_, err = recipes.GetRecipe(ctx, "R-99999")
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("list is global, newest first", func(t *testing.T) {
		all, err := recipes.ListRecipes(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update preserves owner and business ID", func(t *testing.T) {
		updated := testhelpers.NewTestRecipe(bob, "Risotto alla Milanese", []string{"rice", "saffron"})
		result, err := recipes.UpdateRecipe(ctx, "R-00002", updated)
		require.NoError(t, err)

		assert.Equal(t, "R-00002", result.RecipeID)
		assert.Equal(t, alice.ID, result.UserID)
		assert.Equal(t, "Risotto alla Milanese", result.Title)
	})

	t.Run("delete is owner-scoped", func(t *testing.T) {
		err := recipes.DeleteRecipe(ctx, "R-00001", bob.ID)
		assert.ErrorIs(t, err, ErrRecipeNotFound)

		err = recipes.DeleteRecipe(ctx, "R-00001", alice.ID)
		require.NoError(t, err)

		_, err = recipes.GetRecipe(ctx, "R-00001")
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})
}

func TestValidateRecipe(t *testing.T) {
	alice := &models.User{Name: "Alice"}

	valid := func() *models.Recipe {
		return testhelpers.NewTestRecipe(alice, "Carbonara", []string{"spaghetti", "eggs"})
	}

	t.Run("valid recipe passes", func(t *testing.T) {
		assert.NoError(t, ValidateRecipe(valid()))
	})

	tests := []struct {
		name   string
		mutate func(*models.Recipe)
	}{
		{"title too short", func(r *models.Recipe) { r.Title = "ab" }},
		{"no ingredients", func(r *models.Recipe) { r.Ingredients = models.JSONBStringArray{} }},
		{"ingredient too short", func(r *models.Recipe) { r.Ingredients = models.JSONBStringArray{"ab"} }},
		{"no instructions", func(r *models.Recipe) { r.Instructions = models.JSONBStringArray{} }},
		{"instruction too short", func(r *models.Recipe) { r.Instructions = models.JSONBStringArray{"stir"} }},
		{"unknown meal type", func(r *models.Recipe) { r.MealType = "Brunch" }},
		{"unknown cuisine", func(r *models.Recipe) { r.CuisineType = "Martian" }},
		{"unknown difficulty", func(r *models.Recipe) { r.Difficulty = "Impossible" }},
		{"prep time out of range", func(r *models.Recipe) { r.PrepTime = 481 }},
		{"servings out of range", func(r *models.Recipe) { r.Servings = 21 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := valid()
			tt.mutate(recipe)
			assert.ErrorIs(t, ValidateRecipe(recipe), ErrValidation)
		})
	}
}
