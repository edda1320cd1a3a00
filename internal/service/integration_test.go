package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/testhelpers"
)

// End-to-end service behavior against real PostgreSQL, including the row-lock
// path of the ID sequence. Requires docker; skipped otherwise.
func TestRecipeLifecyclePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleChef)
	recipes := NewRecipeService(db)
	inventory := NewInventoryService(db)
	availability := NewAvailabilityService(db, nil)

	recipe, err := recipes.CreateRecipe(ctx, testhelpers.NewTestRecipe(alice, "Omelette", []string{"2 large eggs", "butter"}))
	require.NoError(t, err)
	assert.Equal(t, "R-00001", recipe.RecipeID)

	_, err = inventory.CreateItem(ctx, testhelpers.NewTestInventoryItem(alice, "Eggs", 12, 3.50))
	require.NoError(t, err)
	_, err = inventory.CreateItem(ctx, testhelpers.NewTestInventoryItem(alice, "Butter", 1, 4.25))
	require.NoError(t, err)

	results, err := availability.RecipeAvailability(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Percent)
	assert.Equal(t, StatusReady, results[0].Status)

	// JSONB round trip keeps the ingredient list intact.
	reloaded, err := recipes.GetRecipe(ctx, recipe.RecipeID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Ingredients, reloaded.Ingredients)
}
