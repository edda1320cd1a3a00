package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/internal/models"
)

// The insights view uses a slightly wider expiry horizon than the alert page.
const insightExpiryDays = 3

// Caps on the smart shopping list output.
const (
	maxShoppingSuggestions  = 10
	maxRecipesPerSuggestion = 5
)

// RecipeRef is a lightweight pointer to a recipe in a read model.
type RecipeRef struct {
	RecipeID string `json:"recipe_id"`
	Title    string `json:"title"`
}

// WasteItem is an expiring inventory item cross-referenced with the recipes
// that could still use it.
type WasteItem struct {
	Item         models.InventoryItem `json:"item"`
	ValueAtRisk  float64              `json:"value_at_risk"`
	RecipesUsing []RecipeRef          `json:"recipes_using"`
}

// MonthlySpend aggregates purchases for one (year, month, category) bucket.
type MonthlySpend struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Category   string  `json:"category"`
	TotalSpent float64 `json:"total_spent"`
	Purchases  int     `json:"purchases"`
}

// ShoppingSuggestion ranks a missing ingredient by how many recipes need it.
type ShoppingSuggestion struct {
	Ingredient  string      `json:"ingredient"`
	RecipeCount int         `json:"recipe_count"`
	Recipes     []RecipeRef `json:"recipes"`
}

// InventoryInsights is the full insights read model.
type InventoryInsights struct {
	ExpirationWaste           []WasteItem          `json:"expiration_waste"`
	MonthlySpendingByCategory []MonthlySpend       `json:"monthly_spending_by_category"`
	SmartShoppingList         []ShoppingSuggestion `json:"smart_shopping_list"`
}

// InsightsService computes the inventory optimization read models.
type InsightsService struct {
	db      *gorm.DB
	matcher Matcher
}

func NewInsightsService(db *gorm.DB, matcher Matcher) *InsightsService {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &InsightsService{db: db, matcher: matcher}
}

// Insights fetches one snapshot of both collections and computes the three
// facets concurrently. All-or-nothing: any failure fails the whole request.
func (s *InsightsService) Insights(ctx context.Context) (*InventoryInsights, error) {
	var (
		items   []models.InventoryItem
		recipes []models.Recipe
	)

	fetch, fetchCtx := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		return s.db.WithContext(fetchCtx).Find(&items).Error
	})
	fetch.Go(func() error {
		return s.db.WithContext(fetchCtx).Find(&recipes).Error
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	insights := &InventoryInsights{}
	compute, _ := errgroup.WithContext(ctx)
	compute.Go(func() error {
		insights.ExpirationWaste = ExpirationWaste(items, recipes, time.Now(), insightExpiryDays, s.matcher)
		return nil
	})
	compute.Go(func() error {
		insights.MonthlySpendingByCategory = MonthlySpendingByCategory(items)
		return nil
	})
	compute.Go(func() error {
		insights.SmartShoppingList = SmartShoppingList(recipes, items, s.matcher)
		return nil
	})
	if err := compute.Wait(); err != nil {
		return nil, err
	}
	return insights, nil
}

// ExpirationWaste lists items inside the expiry horizon together with every
// recipe whose ingredient list mentions the item's name. The match runs the
// same substring strategy as availability, just in the reverse direction:
// the inventory name is searched inside each recipe ingredient line.
func ExpirationWaste(items []models.InventoryItem, recipes []models.Recipe, now time.Time, expiryDays int, matcher Matcher) []WasteItem {
	cutoff := expiryCutoff(now, expiryDays)

	waste := make([]WasteItem, 0)
	for _, item := range items {
		if item.ExpirationDate.After(cutoff) {
			continue
		}

		using := make([]RecipeRef, 0)
		for _, recipe := range recipes {
			for _, ingredient := range recipe.Ingredients {
				if matcher.Matches(ingredient, item.IngredientName) {
					using = append(using, RecipeRef{RecipeID: recipe.RecipeID, Title: recipe.Title})
					break
				}
			}
		}

		waste = append(waste, WasteItem{
			Item:         item,
			ValueAtRisk:  round2(itemValue(item.Cost, item.Quantity)),
			RecipesUsing: using,
		})
	}

	sort.SliceStable(waste, func(i, j int) bool {
		return waste[i].Item.ExpirationDate.Before(waste[j].Item.ExpirationDate)
	})
	return waste
}

// MonthlySpendingByCategory groups purchases by (year, month, category),
// summing cost×quantity, sorted by year desc, month desc, spend desc.
func MonthlySpendingByCategory(items []models.InventoryItem) []MonthlySpend {
	type bucketKey struct {
		year     int
		month    int
		category string
	}
	type bucket struct {
		total     decimal.Decimal
		purchases int
	}

	buckets := make(map[bucketKey]*bucket)
	for _, item := range items {
		key := bucketKey{
			year:     item.PurchaseDate.Year(),
			month:    int(item.PurchaseDate.Month()),
			category: item.Category,
		}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.total = b.total.Add(itemValue(item.Cost, item.Quantity))
		b.purchases++
	}

	spending := make([]MonthlySpend, 0, len(buckets))
	for key, b := range buckets {
		spending = append(spending, MonthlySpend{
			Year:       key.year,
			Month:      key.month,
			Category:   key.category,
			TotalSpent: round2(b.total),
			Purchases:  b.purchases,
		})
	}

	sort.Slice(spending, func(i, j int) bool {
		if spending[i].Year != spending[j].Year {
			return spending[i].Year > spending[j].Year
		}
		if spending[i].Month != spending[j].Month {
			return spending[i].Month > spending[j].Month
		}
		if spending[i].TotalSpent != spending[j].TotalSpent {
			return spending[i].TotalSpent > spending[j].TotalSpent
		}
		return spending[i].Category < spending[j].Category
	})
	return spending
}

// SmartShoppingList inverts the per-recipe availability computation: instead
// of grouping missing ingredients by recipe, it groups recipes by missing
// ingredient, ranking ingredients by how many distinct recipes need them.
// Returns the top 10, each with up to 5 example recipes.
func SmartShoppingList(recipes []models.Recipe, items []models.InventoryItem, matcher Matcher) []ShoppingSuggestion {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.IngredientName
	}

	type demand struct {
		count   int
		recipes []RecipeRef
	}
	demands := make(map[string]*demand)
	order := make([]string, 0)

	for i := range recipes {
		result := ComputeAvailability(&recipes[i], names, matcher)
		seen := make(map[string]bool, len(result.Missing))
		for _, ingredient := range result.Missing {
			if seen[ingredient] {
				continue
			}
			seen[ingredient] = true

			d := demands[ingredient]
			if d == nil {
				d = &demand{}
				demands[ingredient] = d
				order = append(order, ingredient)
			}
			d.count++
			if len(d.recipes) < maxRecipesPerSuggestion {
				d.recipes = append(d.recipes, RecipeRef{RecipeID: recipes[i].RecipeID, Title: recipes[i].Title})
			}
		}
	}

	suggestions := make([]ShoppingSuggestion, 0, len(order))
	for _, ingredient := range order {
		d := demands[ingredient]
		suggestions = append(suggestions, ShoppingSuggestion{
			Ingredient:  ingredient,
			RecipeCount: d.count,
			Recipes:     d.recipes,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].RecipeCount > suggestions[j].RecipeCount
	})
	if len(suggestions) > maxShoppingSuggestions {
		suggestions = suggestions[:maxShoppingSuggestions]
	}
	return suggestions
}
