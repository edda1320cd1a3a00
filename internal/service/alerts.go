package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/config"
	"github.com/cloudkitchenpro/backend/internal/models"
)

// SuggestedOrderAddOn is added to the current quantity of a low-stock item to
// produce the reorder suggestion.
const SuggestedOrderAddOn = 5

// ExpiringItem is an inventory item inside the expiry horizon.
type ExpiringItem struct {
	Item        models.InventoryItem `json:"item"`
	DaysLeft    int                  `json:"days_left"`
	ValueAtRisk float64              `json:"value_at_risk"`
}

// LowStockItem is an inventory item below the stock threshold.
type LowStockItem struct {
	Item           models.InventoryItem `json:"item"`
	SuggestedOrder float64              `json:"suggested_order"`
}

// CategorySummary aggregates one inventory category.
type CategorySummary struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// AlertSnapshot is the full alert read model over one inventory snapshot.
type AlertSnapshot struct {
	ExpiringSoon      []ExpiringItem             `json:"expiring_soon"`
	LowStock          []LowStockItem             `json:"low_stock"`
	TotalItems        int                        `json:"total_items"`
	TotalValue        float64                    `json:"total_value"`
	Categories        map[string]CategorySummary `json:"categories"`
	ExpiryDays        int                        `json:"expiry_days"`
	LowStockThreshold float64                    `json:"low_stock_threshold"`
}

// AlertService scans the shared inventory for expiring and low-stock items.
type AlertService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAlertService(db *gorm.DB, cfg *config.Config) *AlertService {
	return &AlertService{db: db, cfg: cfg}
}

// Alerts fetches the full inventory and builds the alert snapshot. Recomputed
// on every request; nothing is cached or mutated.
func (s *AlertService) Alerts(ctx context.Context) (*AlertSnapshot, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	snapshot := BuildAlertSnapshot(items, time.Now(), s.cfg.ExpiryDays, s.cfg.LowStockThreshold)
	return &snapshot, nil
}

// BuildAlertSnapshot computes expiring/low-stock alerts and value totals over
// one inventory snapshot in a single pass. Pure function of its inputs.
func BuildAlertSnapshot(items []models.InventoryItem, now time.Time, expiryDays int, lowStockThreshold float64) AlertSnapshot {
	cutoff := expiryCutoff(now, expiryDays)
	today := startOfDay(now)

	snapshot := AlertSnapshot{
		ExpiringSoon:      make([]ExpiringItem, 0),
		LowStock:          make([]LowStockItem, 0),
		Categories:        make(map[string]CategorySummary),
		ExpiryDays:        expiryDays,
		LowStockThreshold: lowStockThreshold,
	}

	type categoryAcc struct {
		count int
		value decimal.Decimal
	}
	categories := make(map[string]*categoryAcc)

	totalValue := decimal.Zero
	for _, item := range items {
		value := itemValue(item.Cost, item.Quantity)
		totalValue = totalValue.Add(value)

		acc := categories[item.Category]
		if acc == nil {
			acc = &categoryAcc{}
			categories[item.Category] = acc
		}
		acc.count++
		acc.value = acc.value.Add(value)

		if !item.ExpirationDate.After(cutoff) {
			snapshot.ExpiringSoon = append(snapshot.ExpiringSoon, ExpiringItem{
				Item:        item,
				DaysLeft:    daysBetween(today, item.ExpirationDate),
				ValueAtRisk: round2(value),
			})
		}
		if item.Quantity < lowStockThreshold {
			snapshot.LowStock = append(snapshot.LowStock, LowStockItem{
				Item:           item,
				SuggestedOrder: item.Quantity + SuggestedOrderAddOn,
			})
		}
	}
	for category, acc := range categories {
		snapshot.Categories[category] = CategorySummary{Count: acc.count, Value: round2(acc.value)}
	}
	snapshot.TotalItems = len(items)
	snapshot.TotalValue = round2(totalValue)

	// Soonest expiry first, lowest stock first.
	sort.SliceStable(snapshot.ExpiringSoon, func(i, j int) bool {
		return snapshot.ExpiringSoon[i].Item.ExpirationDate.Before(snapshot.ExpiringSoon[j].Item.ExpirationDate)
	})
	sort.SliceStable(snapshot.LowStock, func(i, j int) bool {
		return snapshot.LowStock[i].Item.Quantity < snapshot.LowStock[j].Item.Quantity
	})

	return snapshot
}

// expiryCutoff is the end of day, expiryDays days from now: an item expiring
// any time on the last day of the horizon still counts.
func expiryCutoff(now time.Time, expiryDays int) time.Time {
	return startOfDay(now).AddDate(0, 0, expiryDays+1).Add(-time.Nanosecond)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole days from one date to another, both truncated to
// day boundaries first. Negative for already-expired items.
func daysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}
