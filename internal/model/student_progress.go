package model

import "time"

// StudentProgress is the second, historically independent record of course
// membership. It predates the enrollments table and is still read by parts
// of the reporting surface, so every enrollment write keeps both in
// agreement and SyncEnrollmentState repairs any divergence between them.
type StudentProgress struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	StudentID     uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_progress_pair"`
	CourseID      uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_student_progress_pair"`
	TotalProgress float64   `json:"total_progress" gorm:"not null;default:0"` // 0-100
	LastAccessed  time.Time `json:"last_accessed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
