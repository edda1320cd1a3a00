package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudkitchenpro/backend/internal/models"
)

// Sequence names for the business identifiers.
const (
	SequenceRecipe    = "recipe"
	SequenceInventory = "inventory"
)

// NextBusinessID reserves the next value of the named sequence and formats it
// with the given prefix (R-00042, I-00007). It must run inside the same
// transaction as the insert that uses the ID: the row lock on the sequence row
// serializes concurrent creates so IDs stay monotonic and unique.
func NextBusinessID(tx *gorm.DB, name, prefix string) (string, error) {
	var seq models.Sequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&seq).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		seq = models.Sequence{Name: name, Value: 0}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("create sequence %s: %w", name, err)
		}
	case err != nil:
		return "", fmt.Errorf("lock sequence %s: %w", name, err)
	}

	seq.Value++
	if err := tx.Model(&models.Sequence{}).Where("name = ?", name).Update("value", seq.Value).Error; err != nil {
		return "", fmt.Errorf("advance sequence %s: %w", name, err)
	}

	return fmt.Sprintf("%s-%05d", prefix, seq.Value), nil
}
