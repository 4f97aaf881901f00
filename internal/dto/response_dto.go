package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Details []string `json:"details,omitempty"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}

type CourseSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`
	EnrollmentCount int       `json:"enrollment_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type EnrollmentResponseDTO struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	CourseID    uint       `json:"course_id"`
	Status      string     `json:"status"`
	Progress    float64    `json:"progress"`
	Source      string     `json:"source,omitempty"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type AccessRequestResponseDTO struct {
	ID          uint       `json:"id"`
	StudentID   uint       `json:"student_id"`
	CourseID    uint       `json:"course_id"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *uint      `json:"reviewed_by,omitempty"`
}

type EnrollResultDTO struct {
	EnrollmentID  uint `json:"enrollment_id"`
	StudentID     uint `json:"student_id"`
	CourseID      uint `json:"course_id"`
	QBankEnrolled bool `json:"qbank_enrolled"`
	QBankID       uint `json:"qbank_id,omitempty"`
}

type UnenrollResultDTO struct {
	Deleted bool `json:"deleted"`
}

type SyncResultDTO struct {
	UserID    uint     `json:"user_id"`
	CourseID  uint     `json:"course_id"`
	Source    string   `json:"source"`
	Corrected []string `json:"corrected,omitempty"`
	Progress  float64  `json:"progress"`
}

type CreateRequestResultDTO struct {
	RequestID uint `json:"request_id"`
}

type ApproveResultDTO struct {
	Approved          bool `json:"approved"`
	EnrollmentCreated bool `json:"enrollment_created"`
	EnrollmentID      uint `json:"enrollment_id"`
	QBankEnrolled     bool `json:"qbank_enrolled"`
}

type RejectResultDTO struct {
	Rejected bool `json:"rejected"`
}

type RepairResultDTO struct {
	Repaired   int    `json:"repaired"`
	RequestIDs []uint `json:"request_ids,omitempty"`
}

type QBankSummaryDTO struct {
	ID            uint      `json:"id"`
	CourseID      *uint     `json:"course_id,omitempty"`
	Title         string    `json:"title"`
	Published     bool      `json:"published"`
	Active        bool      `json:"active"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type NotificationDTO struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
