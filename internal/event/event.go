package event

import (
	"time"

	"github.com/google/uuid"
)

// Domain event types emitted by the data manager after commit.
const (
	TypeEnrollmentCreated = "enrollment.created"
	TypeEnrollmentRemoved = "enrollment.removed"
	TypeRequestCreated    = "request.created"
	TypeRequestApproved   = "request.approved"
	TypeRequestRejected   = "request.rejected"
	TypeProgressSynced    = "progress.synced"
)

// Event is an immutable record of a committed state change. Events are
// published strictly after the transaction that produced them commits and
// are consumed by logging and notification collaborators, never by the
// transaction itself.
type Event struct {
	ID         uuid.UUID              `json:"id"`
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	ActorID    uint                   `json:"actor_id"`
	StudentID  uint                   `json:"student_id"`
	CourseID   uint                   `json:"course_id"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

func New(eventType string, actorID, studentID, courseID uint, payload map[string]interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now(),
		ActorID:    actorID,
		StudentID:  studentID,
		CourseID:   courseID,
		Payload:    payload,
	}
}
