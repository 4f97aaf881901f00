package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusActive    = "active"
	CourseStatusArchived  = "archived"
)

type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null;uniqueIndex"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status" gorm:"not null;default:'draft'"` // "draft", "published", "active", "archived"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Enrollable reports whether students may enroll into the course.
func (c *Course) Enrollable() bool {
	return c.Status == CourseStatusPublished || c.Status == CourseStatusActive
}
