package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels recipes. Every tag belongs to exactly one user.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name" validate:"required"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Tag) String() string { return t.Name }
