package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a user-owned ingredient that recipes reference.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name" validate:"required"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i Ingredient) String() string { return i.Name }
