package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/internal/models"
)

var (
	ErrValidation               = errors.New("validation failed")
	ErrItemNotFound             = errors.New("inventory item not found")
	ErrExpirationBeforePurchase = errors.New("expiration date must be after purchase date")
)

var ingredientNameRe = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)

// InventoryUpdate carries a partial inventory update. Nil fields are left
// unchanged.
type InventoryUpdate struct {
	IngredientName *string
	Quantity       *float64
	Unit           *string
	Category       *string
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
	Location       *string
	Cost           *float64
}

// InventoryService handles inventory CRUD for the shared kitchen stock.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// CreateItem validates and inserts an inventory item, assigning the next
// I-xxxxx business ID inside the insert transaction.
func (s *InventoryService) CreateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := ValidateInventoryItem(item); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := NextBusinessID(tx, SequenceInventory, "I")
		if err != nil {
			return err
		}
		item.InventoryID = id
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an inventory item by its business ID.
func (s *InventoryService) GetItem(ctx context.Context, inventoryID string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.WithContext(ctx).Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListItems lists the whole shared inventory, most recent first.
func (s *InventoryService) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem applies a partial update. The expiration-after-purchase
// invariant holds even when only one of the two dates is supplied: the
// unchanged date is fetched from storage and validated against.
func (s *InventoryService) UpdateItem(ctx context.Context, inventoryID string, update InventoryUpdate) (*models.InventoryItem, error) {
	existing, err := s.GetItem(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if update.IngredientName != nil {
		merged.IngredientName = *update.IngredientName
	}
	if update.Quantity != nil {
		merged.Quantity = *update.Quantity
	}
	if update.Unit != nil {
		merged.Unit = *update.Unit
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.PurchaseDate != nil {
		merged.PurchaseDate = *update.PurchaseDate
	}
	if update.ExpirationDate != nil {
		merged.ExpirationDate = *update.ExpirationDate
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Cost != nil {
		merged.Cost = *update.Cost
	}

	if err := ValidateInventoryItem(&merged); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"ingredient_name": merged.IngredientName,
		"quantity":        merged.Quantity,
		"unit":            merged.Unit,
		"category":        merged.Category,
		"purchase_date":   merged.PurchaseDate,
		"expiration_date": merged.ExpirationDate,
		"location":        merged.Location,
		"cost":            merged.Cost,
	}
	if err := s.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("inventory_id = ?", inventoryID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.GetItem(ctx, inventoryID)
}

// DeleteItem removes an inventory item. Not owner-scoped: the inventory is
// shared, anyone in the kitchen can consume stock.
func (s *InventoryService) DeleteItem(ctx context.Context, inventoryID string) error {
	result := s.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ValidateInventoryItem checks field bounds, enum membership and the
// cross-field date invariant.
func ValidateInventoryItem(item *models.InventoryItem) error {
	name := strings.TrimSpace(item.IngredientName)
	if len(name) < models.IngredientMinLength || len(name) > models.IngredientMaxLength {
		return fmt.Errorf("%w: ingredient name must be %d-%d characters", ErrValidation, models.IngredientMinLength, models.IngredientMaxLength)
	}
	if !ingredientNameRe.MatchString(name) {
		return fmt.Errorf("%w: ingredient name can only contain letters, spaces, and hyphens", ErrValidation)
	}
	if item.Quantity < models.MinQuantity || item.Quantity > models.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between %v and %v", ErrValidation, models.MinQuantity, models.MaxQuantity)
	}
	if !contains(models.AllowedUnits, item.Unit) {
		return fmt.Errorf("%w: unit must be one of %s", ErrValidation, strings.Join(models.AllowedUnits, ", "))
	}
	if !contains(models.AllowedCategories, item.Category) {
		return fmt.Errorf("%w: category must be one of %s", ErrValidation, strings.Join(models.AllowedCategories, ", "))
	}
	if !contains(models.AllowedLocations, item.Location) {
		return fmt.Errorf("%w: location must be one of %s", ErrValidation, strings.Join(models.AllowedLocations, ", "))
	}
	if item.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: purchase date is required", ErrValidation)
	}
	if item.PurchaseDate.After(time.Now()) {
		return fmt.Errorf("%w: purchase date cannot be in the future", ErrValidation)
	}
	if item.ExpirationDate.IsZero() {
		return fmt.Errorf("%w: expiration date is required", ErrValidation)
	}
	if !item.ExpirationDate.After(item.PurchaseDate) {
		return ErrExpirationBeforePurchase
	}
	if item.Cost < models.MinCost || item.Cost > models.MaxCost {
		return fmt.Errorf("%w: cost must be between $%v and $%v", ErrValidation, models.MinCost, models.MaxCost)
	}
	if cents := item.Cost * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
		return fmt.Errorf("%w: cost must have at most 2 decimal places", ErrValidation)
	}
	return nil
}
