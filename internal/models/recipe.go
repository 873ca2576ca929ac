package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the central entity. Tag and ingredient sets live in explicit
// join tables (recipe_tags, recipe_ingredients) keyed by both ids, so a
// duplicate association is impossible by construction.
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title" validate:"required"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes" validate:"required,gt=0"`
	Price       float64      `gorm:"type:numeric(8,2);not null" json:"price" validate:"gte=0"`
	Link        string       `json:"link,omitempty"`
	Image       string       `json:"image,omitempty"`
	UserID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r Recipe) String() string { return r.Title }
