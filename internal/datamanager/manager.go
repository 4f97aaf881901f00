package datamanager

import (
	"time"

	"github.com/mvhien/learnhub/internal/event"
	"github.com/mvhien/learnhub/internal/repository"
)

// Config tunes the executor's retry policy.
type Config struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		BaseBackoff: 50 * time.Millisecond,
		MaxBackoff:  2 * time.Second,
	}
}

// Manager owns the enrollment/request workflows. Every mutation goes
// through the executor so the dual-table invariant, retry policy and
// post-commit event emission are enforced in one place.
type Manager struct {
	store   repository.Store
	bus     *event.Bus
	cfg     Config
	sleepFn func(time.Duration) // overridable in tests
}

func NewManager(store repository.Store, bus *event.Bus, cfg Config) *Manager {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultConfig().MaxRetries
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = DefaultConfig().BaseBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = DefaultConfig().MaxBackoff
	}
	return &Manager{store: store, bus: bus, cfg: cfg}
}

// EnrollStudent writes both enrollment tables atomically, then runs the
// best-effort question bank auto-enroll once the enrollment is durable.
func (m *Manager) EnrollStudent(p EnrollParams) (EnrollOutcome, error) {
	out, err := run(m, operation[EnrollOutcome]{
		name:     "enroll_student",
		validate: func() error { return m.validateEnrollment(p.StudentID, p.CourseID) },
		execute: func(tx repository.Store) (EnrollOutcome, error) {
			return m.enrollStudent(tx, p)
		},
		retryable: true,
		events: func(out EnrollOutcome) []event.Event {
			return []event.Event{event.New(event.TypeEnrollmentCreated, p.ActorID, out.StudentID, out.CourseID, map[string]interface{}{
				"enrollment_id": out.EnrollmentID,
				"source":        out.Source,
			})}
		},
	})
	if err != nil {
		return out, err
	}
	qb := m.autoEnrollQuestionBank(m.store, out.StudentID, out.CourseID)
	out.QBankEnrolled = qb.Enrolled
	out.QBankID = qb.QBankID
	return out, nil
}

func (m *Manager) UnenrollStudent(p UnenrollParams) (UnenrollOutcome, error) {
	return run(m, operation[UnenrollOutcome]{
		name:     "unenroll_student",
		validate: func() error { return m.validateUnenrollment(p.UserID, p.CourseID) },
		execute: func(tx repository.Store) (UnenrollOutcome, error) {
			return m.unenrollStudent(tx, p)
		},
		retryable: true,
		events: func(out UnenrollOutcome) []event.Event {
			return []event.Event{event.New(event.TypeEnrollmentRemoved, p.ActorID, out.UserID, out.CourseID, nil)}
		},
	})
}

func (m *Manager) SyncEnrollmentState(userID, courseID uint) (SyncOutcome, error) {
	return run(m, operation[SyncOutcome]{
		name: "sync_enrollment_state",
		execute: func(tx repository.Store) (SyncOutcome, error) {
			return m.syncEnrollmentState(tx, userID, courseID)
		},
		retryable: true,
		events: func(out SyncOutcome) []event.Event {
			if len(out.Corrected) == 0 {
				return nil
			}
			return []event.Event{event.New(event.TypeProgressSynced, userID, out.UserID, out.CourseID, map[string]interface{}{
				"source":    out.Source,
				"corrected": out.Corrected,
				"progress":  out.Progress,
			})}
		},
	})
}

func (m *Manager) CreateRequest(p CreateRequestParams) (CreateRequestOutcome, error) {
	return run(m, operation[CreateRequestOutcome]{
		name:     "create_request",
		validate: func() error { return m.validateRequestCreation(p.StudentID, p.CourseID) },
		execute: func(tx repository.Store) (CreateRequestOutcome, error) {
			return m.createRequest(tx, p)
		},
		retryable: true,
		events: func(out CreateRequestOutcome) []event.Event {
			return []event.Event{event.New(event.TypeRequestCreated, p.StudentID, out.StudentID, out.CourseID, map[string]interface{}{
				"request_id": out.RequestID,
			})}
		},
	})
}

// ApproveRequest enrolls the student and closes the request in one
// transaction, then runs the question bank auto-enroll post-step.
func (m *Manager) ApproveRequest(p RequestActionParams) (ApproveOutcome, error) {
	out, err := run(m, operation[ApproveOutcome]{
		name:     "approve_request",
		validate: func() error { return m.validateRequestAction(p.RequestID, p.AdminID) },
		execute: func(tx repository.Store) (ApproveOutcome, error) {
			return m.approveRequest(tx, p)
		},
		retryable: true,
		events: func(out ApproveOutcome) []event.Event {
			return []event.Event{
				event.New(event.TypeRequestApproved, p.AdminID, out.StudentID, out.CourseID, map[string]interface{}{
					"request_id": out.RequestID,
				}),
				event.New(event.TypeEnrollmentCreated, p.AdminID, out.StudentID, out.CourseID, map[string]interface{}{
					"enrollment_id": out.EnrollmentID,
					"source":        "request",
				}),
			}
		},
	})
	if err != nil {
		return out, err
	}
	qb := m.autoEnrollQuestionBank(m.store, out.StudentID, out.CourseID)
	out.QBankEnrolled = qb.Enrolled
	out.QBankID = qb.QBankID
	return out, nil
}

// RejectRequest is final and deliberately not retried: a rejection that
// failed transiently is safer surfaced than replayed with double side
// effects.
func (m *Manager) RejectRequest(p RequestActionParams) (RejectOutcome, error) {
	return run(m, operation[RejectOutcome]{
		name:     "reject_request",
		validate: func() error { return m.validateRequestAction(p.RequestID, p.AdminID) },
		execute: func(tx repository.Store) (RejectOutcome, error) {
			return m.rejectRequest(tx, p)
		},
		retryable: false,
		events: func(out RejectOutcome) []event.Event {
			return []event.Event{event.New(event.TypeRequestRejected, p.AdminID, out.StudentID, out.CourseID, map[string]interface{}{
				"request_id": out.RequestID,
				"reason":     p.Reason,
			})}
		},
	})
}

func (m *Manager) RepairStuckRequests(adminID uint) (RepairOutcome, error) {
	return run(m, operation[RepairOutcome]{
		name: "repair_stuck_requests",
		execute: func(tx repository.Store) (RepairOutcome, error) {
			return m.repairStuckRequests(tx, adminID)
		},
		retryable: true,
	})
}
