package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/testhelpers"
)

func TestInventoryCRUD(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleChef)
	inventory := NewInventoryService(db)

	t.Run("create assigns sequential business IDs", func(t *testing.T) {
		first, err := inventory.CreateItem(ctx, testhelpers.NewTestInventoryItem(alice, "Tomatoes", 5, 2.50))
		require.NoError(t, err)
		assert.Equal(t, "I-00001", first.InventoryID)

		second, err := inventory.CreateItem(ctx, testhelpers.NewTestInventoryItem(alice, "Onions", 3, 1.20))
		require.NoError(t, err)
		assert.Equal(t, "I-00002", second.InventoryID)
	})

	t.Run("get and list", func(t *testing.T) {
		item, err := inventory.GetItem(ctx, "I-00001")
		require.NoError(t, err)
		assert.Equal(t, "Tomatoes", item.IngredientName)

		_, err = inventory.GetItem(ctx, "I-99999")
		assert.ErrorIs(t, err, ErrItemNotFound)

		items, err := inventory.ListItems(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		quantity := 8.0
		item, err := inventory.UpdateItem(ctx, "I-00001", InventoryUpdate{Quantity: &quantity})
		require.NoError(t, err)
		assert.Equal(t, 8.0, item.Quantity)
		assert.Equal(t, "Tomatoes", item.IngredientName)
		assert.Equal(t, 2.50, item.Cost)
	})

	t.Run("date invariant holds under partial updates", func(t *testing.T) {
		// Moving only the purchase date past the stored expiration must fail.
		item, err := inventory.GetItem(ctx, "I-00001")
		require.NoError(t, err)

		badPurchase := item.ExpirationDate.AddDate(0, 0, 1)
		_, err = inventory.UpdateItem(ctx, "I-00001", InventoryUpdate{PurchaseDate: &badPurchase})
		assert.ErrorIs(t, err, ErrValidation)

		// Extending only the expiration is fine.
		laterExpiry := item.ExpirationDate.AddDate(0, 0, 14)
		updated, err := inventory.UpdateItem(ctx, "I-00001", InventoryUpdate{ExpirationDate: &laterExpiry})
		require.NoError(t, err)
		assert.True(t, updated.ExpirationDate.After(item.ExpirationDate))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, inventory.DeleteItem(ctx, "I-00002"))
		assert.ErrorIs(t, inventory.DeleteItem(ctx, "I-00002"), ErrItemNotFound)
	})
}

func TestValidateInventoryItem(t *testing.T) {
	alice := &models.User{Name: "Alice"}

	valid := func() *models.InventoryItem {
		return testhelpers.NewTestInventoryItem(alice, "Tomatoes", 5, 2.50)
	}

	t.Run("valid item passes", func(t *testing.T) {
		assert.NoError(t, ValidateInventoryItem(valid()))
	})

	t.Run("hyphenated names are allowed", func(t *testing.T) {
		item := valid()
		item.IngredientName = "Extra-Virgin Olive Oil"
		assert.NoError(t, ValidateInventoryItem(item))
	})

	t.Run("expiration before purchase is a distinct error", func(t *testing.T) {
		item := valid()
		item.ExpirationDate = item.PurchaseDate.AddDate(0, 0, -1)
		assert.ErrorIs(t, ValidateInventoryItem(item), ErrExpirationBeforePurchase)
	})

	tests := []struct {
		name   string
		mutate func(*models.InventoryItem)
	}{
		{"name too short", func(i *models.InventoryItem) { i.IngredientName = "a" }},
		{"name with digits", func(i *models.InventoryItem) { i.IngredientName = "Tomatoes2" }},
		{"zero quantity", func(i *models.InventoryItem) { i.Quantity = 0 }},
		{"quantity too large", func(i *models.InventoryItem) { i.Quantity = 10000 }},
		{"unknown unit", func(i *models.InventoryItem) { i.Unit = "bushels" }},
		{"unknown category", func(i *models.InventoryItem) { i.Category = "Snacks" }},
		{"unknown location", func(i *models.InventoryItem) { i.Location = "Garage" }},
		{"future purchase date", func(i *models.InventoryItem) { i.PurchaseDate = time.Now().AddDate(0, 0, 2) }},
		{"cost too low", func(i *models.InventoryItem) { i.Cost = 0 }},
		{"cost too high", func(i *models.InventoryItem) { i.Cost = 1000 }},
		{"cost with three decimals", func(i *models.InventoryItem) { i.Cost = 1.999 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid()
			tt.mutate(item)
			assert.ErrorIs(t, ValidateInventoryItem(item), ErrValidation)
		})
	}
}
