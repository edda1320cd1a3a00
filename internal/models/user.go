package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kitchen roles. Chefs own recipes, every role shares the inventory,
// admins get the reporting surface.
const (
	RoleAdmin   = "admin"
	RoleChef    = "chef"
	RoleManager = "manager"
)

// Roles lists every role accepted at registration.
var Roles = []string{RoleAdmin, RoleChef, RoleManager}

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"size:20;not null;default:'chef'" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
