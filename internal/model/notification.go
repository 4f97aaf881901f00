package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification is written by the event sink after a state change commits.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Type      string         `json:"type" gorm:"not null"` // mirrors the domain event type
	Message   string         `json:"message" gorm:"type:text;not null"`
	Read      bool           `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
