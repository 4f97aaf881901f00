package dto

// CreateAccessRequestDTO is the student's request body when asking to join
// a course.
type CreateAccessRequestDTO struct {
	Reason string `json:"reason" binding:"omitempty,max=1000"`
}

// AdminEnrollDTO enrolls a student directly, bypassing the request flow.
type AdminEnrollDTO struct {
	StudentID uint   `json:"student_id" binding:"required"`
	CourseID  uint   `json:"course_id" binding:"required"`
	Source    string `json:"source" binding:"omitempty,oneof=admin self request"`
}

type AdminUnenrollDTO struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"course_id" binding:"required"`
}

type SyncEnrollmentDTO struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"course_id" binding:"required"`
}

type RejectRequestDTO struct {
	Reason string `json:"reason" binding:"omitempty,max=1000"`
}

// DevTokenDTO mints a token for local development when AUTH_DEV_TOKENS is
// enabled.
type DevTokenDTO struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=student admin"`
}
