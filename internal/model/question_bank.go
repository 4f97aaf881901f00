package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionBank is a practice-question pool optionally linked to a course.
// Students are auto-enrolled into a published, active bank when they enroll
// into its course.
type QuestionBank struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CourseID    *uint          `json:"course_id,omitempty" gorm:"index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Published   bool           `json:"published" gorm:"not null;default:false"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:QuestionBankID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	QuestionBankID uint           `json:"question_bank_id" gorm:"not null;index"`
	Prompt         string         `json:"prompt" gorm:"type:text;not null"`
	Type           string         `json:"type" gorm:"not null"` // "multiple_choice", "short_answer"
	OrderInBank    int            `json:"order_in_bank" gorm:"not null"`
	MaxScore       float64        `json:"max_score,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
