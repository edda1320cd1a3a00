package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Units accepted on an inventory item.
var AllowedUnits = []string{"pieces", "kg", "g", "liters", "ml", "cups", "tbsp", "tsp", "dozen"}

// Categories accepted on an inventory item.
var AllowedCategories = []string{"Vegetables", "Fruits", "Meat", "Dairy", "Grains", "Spices", "Beverages", "Frozen", "Canned", "Other"}

// Storage locations accepted on an inventory item.
var AllowedLocations = []string{"Fridge", "Freezer", "Pantry", "Counter", "Cupboard"}

// Inventory field bounds.
const (
	IngredientMinLength = 2
	IngredientMaxLength = 50
	MinQuantity         = 0.01
	MaxQuantity         = 9999
	MinCost             = 0.01
	MaxCost             = 999.99
)

// InventoryItem is an ingredient on hand. Items are owned by the user who
// entered them but the whole inventory is shared across the kitchen, so
// availability matching and analytics always read the full collection.
// ExpirationDate is strictly after PurchaseDate, also under partial updates.
type InventoryItem struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	InventoryID    string         `gorm:"size:10;not null;uniqueIndex" json:"inventory_id"`
	UserID         uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	IngredientName string         `gorm:"size:50;not null" json:"ingredient_name"`
	Quantity       float64        `gorm:"not null" json:"quantity"`
	Unit           string         `gorm:"size:10;not null" json:"unit"`
	Category       string         `gorm:"size:20;not null" json:"category"`
	PurchaseDate   time.Time      `gorm:"not null" json:"purchase_date"`
	ExpirationDate time.Time      `gorm:"not null;index" json:"expiration_date"`
	Location       string         `gorm:"size:10;not null" json:"location"`
	Cost           float64        `gorm:"not null" json:"cost"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
