package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/internal/models"
)

// Availability status labels, evaluated against the percent in order.
const (
	StatusReady     = "Ready to Cook!"
	StatusMostly    = "Mostly Available"
	StatusPartially = "Partially Available"
	StatusNot       = "Not Available"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// AvailabilityResult classifies one recipe against an inventory snapshot.
type AvailabilityResult struct {
	Recipe    *models.Recipe `json:"recipe"`
	Available []string       `json:"available"`
	Missing   []string       `json:"missing"`
	Percent   int            `json:"percent"`
	Status    string         `json:"status"`
}

// ComputeAvailability partitions a recipe's ingredients into available and
// missing against the given inventory names and derives the percent and
// status label. Pure: same inputs, same output. An empty ingredient list
// yields 0% / Not Available instead of dividing by zero.
func ComputeAvailability(recipe *models.Recipe, inventoryNames []string, matcher Matcher) AvailabilityResult {
	available := make([]string, 0, len(recipe.Ingredients))
	missing := make([]string, 0)

	for _, ingredient := range recipe.Ingredients {
		found := false
		for _, name := range inventoryNames {
			if matcher.Matches(ingredient, name) {
				found = true
				break
			}
		}
		if found {
			available = append(available, ingredient)
		} else {
			missing = append(missing, ingredient)
		}
	}

	percent := 0
	if len(recipe.Ingredients) > 0 {
		percent = len(available) * 100 / len(recipe.Ingredients)
	}

	return AvailabilityResult{
		Recipe:    recipe,
		Available: available,
		Missing:   missing,
		Percent:   percent,
		Status:    availabilityStatus(percent),
	}
}

func availabilityStatus(percent int) string {
	switch {
	case percent == 100:
		return StatusReady
	case percent >= 60:
		return StatusMostly
	case percent >= 30:
		return StatusPartially
	default:
		return StatusNot
	}
}

// AvailabilityService joins recipes against the live inventory.
type AvailabilityService struct {
	db      *gorm.DB
	matcher Matcher
}

func NewAvailabilityService(db *gorm.DB, matcher Matcher) *AvailabilityService {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &AvailabilityService{db: db, matcher: matcher}
}

// inventoryNames returns every inventory item name, lowercased. Not
// deduplicated; duplicates are harmless for matching.
func (s *AvailabilityService) inventoryNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Pluck("ingredient_name", &names).Error; err != nil {
		return nil, err
	}
	for i, n := range names {
		names[i] = strings.ToLower(n)
	}
	return names, nil
}

// RecipeAvailability computes availability for every recipe owned by the
// given user against the global inventory, most recent recipes first. The
// inventory is deliberately not scoped to the owner: the kitchen shares one
// stock.
func (s *AvailabilityService) RecipeAvailability(ctx context.Context, userID uuid.UUID) ([]AvailabilityResult, error) {
	names, err := s.inventoryNames(ctx)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	results := make([]AvailabilityResult, 0, len(recipes))
	for i := range recipes {
		results = append(results, ComputeAvailability(&recipes[i], names, s.matcher))
	}
	return results, nil
}

// SuggestedRecipes returns every recipe in the system, regardless of owner,
// that is fully cookable from current stock, most recent first. Cross-user
// visibility is intentional: suggestions surface any recipe the kitchen can
// cook right now.
func (s *AvailabilityService) SuggestedRecipes(ctx context.Context) ([]AvailabilityResult, error) {
	names, err := s.inventoryNames(ctx)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	suggested := make([]AvailabilityResult, 0)
	for i := range recipes {
		result := ComputeAvailability(&recipes[i], names, s.matcher)
		if result.Percent == 100 {
			suggested = append(suggested, result)
		}
	}
	return suggested, nil
}

// ImportSuggested copies a suggested recipe into the importing user's own
// collection: fresh business ID, title suffixed with " (Copy)", every other
// content field preserved. The copy has no back-reference to the original.
func (s *AvailabilityService) ImportSuggested(ctx context.Context, userID uuid.UUID, sourceRecipeID string) (*models.Recipe, error) {
	var source models.Recipe
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", sourceRecipeID).
		First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	copy := models.Recipe{
		UserID:       userID,
		Title:        source.Title + " (Copy)",
		Chef:         source.Chef,
		Ingredients:  source.Ingredients,
		Instructions: source.Instructions,
		MealType:     source.MealType,
		CuisineType:  source.CuisineType,
		PrepTime:     source.PrepTime,
		Difficulty:   source.Difficulty,
		Servings:     source.Servings,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := NextBusinessID(tx, SequenceRecipe, "R")
		if err != nil {
			return err
		}
		copy.RecipeID = id
		return tx.Create(&copy).Error
	})
	if err != nil {
		return nil, err
	}
	return &copy, nil
}
