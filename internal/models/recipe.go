package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal types accepted on a recipe.
var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// Cuisine types accepted on a recipe.
var CuisineTypes = []string{"Italian", "Asian", "Mexican", "American", "French", "Indian", "Mediterranean", "Other"}

// Difficulty levels accepted on a recipe.
var DifficultyTypes = []string{"Easy", "Medium", "Hard"}

// Recipe field bounds.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	ChefNameMinLength    = 2
	ChefNameMaxLength    = 50
	MinIngredientCount   = 1
	MaxIngredientCount   = 20
	MinIngredientLength  = 3
	MinInstructionCount  = 1
	MaxInstructionCount  = 15
	InstructionMinLength = 10
	PrepTimeMin          = 1
	PrepTimeMax          = 480
	ServingsMin          = 1
	ServingsMax          = 20
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a chef-owned recipe. RecipeID is the human-readable business
// identifier (R-00042), assigned from a sequence at insert time and never
// changed afterwards. Title is unique per owner.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	RecipeID     string           `gorm:"size:10;not null;uniqueIndex" json:"recipe_id"`
	UserID       uuid.UUID        `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recipes_owner_title" json:"user_id"`
	Title        string           `gorm:"size:100;not null;uniqueIndex:idx_recipes_owner_title" json:"title"`
	Chef         string           `gorm:"size:50;not null" json:"chef"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	MealType     string           `gorm:"size:20;not null" json:"meal_type"`
	CuisineType  string           `gorm:"size:20;not null" json:"cuisine_type"`
	PrepTime     int              `gorm:"not null" json:"prep_time"`
	Difficulty   string           `gorm:"size:10;not null" json:"difficulty"`
	Servings     int              `gorm:"not null" json:"servings"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
