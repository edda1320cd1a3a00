package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/internal/models"
)

var ErrDuplicateTitle = errors.New("a recipe with this title already exists for this user")

// RecipeService handles recipe CRUD. Analytics never go through here; they
// read their own snapshots.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates and inserts a recipe, assigning the next R-xxxxx
// business ID inside the insert transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := ValidateRecipe(recipe); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).
			Where("user_id = ? AND title = ?", recipe.UserID, recipe.Title).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTitle
		}

		id, err := NextBusinessID(tx, SequenceRecipe, "R")
		if err != nil {
			return err
		}
		recipe.RecipeID = id
		return tx.Create(recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by its business ID.
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists all recipes in the system, most recent first. Recipe
// listing is deliberately global: chefs browse each other's recipes.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe replaces the content fields of an existing recipe. The
// business ID and owner never change.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID string, updated *models.Recipe) (*models.Recipe, error) {
	existing, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	updated.UserID = existing.UserID
	if err := ValidateRecipe(updated); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":        updated.Title,
		"chef":         updated.Chef,
		"ingredients":  updated.Ingredients,
		"instructions": updated.Instructions,
		"meal_type":    updated.MealType,
		"cuisine_type": updated.CuisineType,
		"prep_time":    updated.PrepTime,
		"difficulty":   updated.Difficulty,
		"servings":     updated.Servings,
	}
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("recipe_id = ?", recipeID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipeID)
}

// DeleteRecipe removes a recipe owned by the given user.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID string, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// ValidateRecipe checks field bounds and enum membership.
func ValidateRecipe(r *models.Recipe) error {
	title := strings.TrimSpace(r.Title)
	if len(title) < models.TitleMinLength || len(title) > models.TitleMaxLength {
		return fmt.Errorf("%w: title must be %d-%d characters", ErrValidation, models.TitleMinLength, models.TitleMaxLength)
	}
	chef := strings.TrimSpace(r.Chef)
	if len(chef) < models.ChefNameMinLength || len(chef) > models.ChefNameMaxLength {
		return fmt.Errorf("%w: chef name must be %d-%d characters", ErrValidation, models.ChefNameMinLength, models.ChefNameMaxLength)
	}
	if len(r.Ingredients) < models.MinIngredientCount || len(r.Ingredients) > models.MaxIngredientCount {
		return fmt.Errorf("%w: ingredients must contain %d-%d items", ErrValidation, models.MinIngredientCount, models.MaxIngredientCount)
	}
	for _, ingredient := range r.Ingredients {
		if len(strings.TrimSpace(ingredient)) < models.MinIngredientLength {
			return fmt.Errorf("%w: each ingredient must be at least %d characters", ErrValidation, models.MinIngredientLength)
		}
	}
	if len(r.Instructions) < models.MinInstructionCount || len(r.Instructions) > models.MaxInstructionCount {
		return fmt.Errorf("%w: instructions must contain %d-%d steps", ErrValidation, models.MinInstructionCount, models.MaxInstructionCount)
	}
	for _, step := range r.Instructions {
		if len(strings.TrimSpace(step)) < models.InstructionMinLength {
			return fmt.Errorf("%w: each instruction step must be at least %d characters", ErrValidation, models.InstructionMinLength)
		}
	}
	if !contains(models.MealTypes, r.MealType) {
		return fmt.Errorf("%w: meal type must be one of %s", ErrValidation, strings.Join(models.MealTypes, ", "))
	}
	if !contains(models.CuisineTypes, r.CuisineType) {
		return fmt.Errorf("%w: cuisine type must be one of %s", ErrValidation, strings.Join(models.CuisineTypes, ", "))
	}
	if !contains(models.DifficultyTypes, r.Difficulty) {
		return fmt.Errorf("%w: difficulty must be one of %s", ErrValidation, strings.Join(models.DifficultyTypes, ", "))
	}
	if r.PrepTime < models.PrepTimeMin || r.PrepTime > models.PrepTimeMax {
		return fmt.Errorf("%w: prep time must be %d-%d minutes", ErrValidation, models.PrepTimeMin, models.PrepTimeMax)
	}
	if r.Servings < models.ServingsMin || r.Servings > models.ServingsMax {
		return fmt.Errorf("%w: servings must be %d-%d", ErrValidation, models.ServingsMin, models.ServingsMax)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
