package model

import "time"

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusSuspended = "suspended"
)

// Enrollment is the primary record of a student's membership in a course.
// The (user_id, course_id) pair is unique; rows are hard-deleted on
// unenrollment so the pair can be enrolled again later.
type Enrollment struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	Status      string     `json:"status" gorm:"not null;default:'active'"` // "active", "completed", "suspended"
	Progress    float64    `json:"progress" gorm:"not null;default:0"`      // 0-100
	Source      string     `json:"source,omitempty"`                        // "self", "admin", "request"
	EnrolledAt  time.Time  `json:"enrolled_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive || e.Status == EnrollmentStatusCompleted
}
