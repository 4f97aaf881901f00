package model

import "time"

// QBankEnrollment tracks a student's membership in a question bank together
// with their aggregated practice stats. Rows are created opportunistically
// as a side effect of course enrollment, never as a primary write path.
type QBankEnrollment struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_qbank_enrollments_pair"`
	QuestionBankID uint      `json:"question_bank_id" gorm:"not null;uniqueIndex:idx_qbank_enrollments_pair"`
	Progress       float64   `json:"progress" gorm:"not null;default:0"`
	TestsTaken     int       `json:"tests_taken" gorm:"not null;default:0"`
	TestsPassed    int       `json:"tests_passed" gorm:"not null;default:0"`
	AverageScore   float64   `json:"average_score" gorm:"not null;default:0"`
	EnrolledAt     time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
