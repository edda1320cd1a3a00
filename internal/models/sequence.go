package models

// Sequence backs the human-readable business identifiers (R-00042, I-00007).
// One row per entity kind, incremented inside the insert transaction so IDs
// stay monotonic and unique under concurrent creates.
type Sequence struct {
	Name  string `gorm:"size:32;primarykey"`
	Value int64  `gorm:"not null"`
}
