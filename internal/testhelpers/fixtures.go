package testhelpers

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/internal/models"
)

// CreateTestUser inserts a user with a bcrypt-hashed password and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// NewTestRecipe returns a valid recipe owned by the given user. Callers
// override fields as needed before saving.
func NewTestRecipe(user *models.User, title string, ingredients []string) *models.Recipe {
	return &models.Recipe{
		UserID:       user.ID,
		Title:        title,
		Chef:         user.Name,
		Ingredients:  models.JSONBStringArray(ingredients),
		Instructions: models.JSONBStringArray{"Prep all the ingredients", "Cook everything and serve"},
		MealType:     "Dinner",
		CuisineType:  "Italian",
		PrepTime:     30,
		Difficulty:   "Medium",
		Servings:     4,
	}
}

// NewTestInventoryItem returns a valid inventory item purchased yesterday and
// expiring in a week.
func NewTestInventoryItem(owner *models.User, name string, quantity, cost float64) *models.InventoryItem {
	now := time.Now()
	return &models.InventoryItem{
		UserID:         owner.ID,
		IngredientName: name,
		Quantity:       quantity,
		Unit:           "kg",
		Category:       "Vegetables",
		PurchaseDate:   now.AddDate(0, 0, -1),
		ExpirationDate: now.AddDate(0, 0, 7),
		Location:       "Pantry",
		Cost:           cost,
	}
}
