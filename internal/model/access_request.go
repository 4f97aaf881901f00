package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AccessRequest is a student-initiated, admin-reviewed request to join a
// course. Processed requests are soft-deleted: they disappear from the
// normal lookups but stay in the table as audit history.
type AccessRequest struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	StudentID   uint           `json:"student_id" gorm:"not null;index"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Status      string         `json:"status" gorm:"not null;default:'pending'"` // "pending", "approved", "rejected"
	Reason      string         `json:"reason,omitempty" gorm:"type:text"`
	ReviewNote  string         `json:"review_note,omitempty" gorm:"type:text"`
	RequestedAt time.Time      `json:"requested_at" gorm:"autoCreateTime"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	ReviewedBy  *uint          `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *AccessRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// Stuck reports the inconsistent state where a review timestamp was stamped
// but the status never left pending. The data manager writes both in a
// single statement, so new rows can no longer end up here; RepairStuckRequests
// cleans up legacy ones.
func (r *AccessRequest) Stuck() bool {
	return r.ReviewedAt != nil && r.Status == RequestStatusPending
}
