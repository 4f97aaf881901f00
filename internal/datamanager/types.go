package datamanager

// EnrollParams identifies the student/course pair to enroll. ActorID is the
// user who triggered the enrollment (the student for self-enrollment, the
// admin for direct or approval-driven enrollment).
type EnrollParams struct {
	StudentID uint
	CourseID  uint
	Source    string
	ActorID   uint
}

type EnrollOutcome struct {
	EnrollmentID     uint
	ProgressRecordID uint
	StudentID        uint
	CourseID         uint
	Source           string
	QBankEnrolled    bool
	QBankID          uint
}

type UnenrollParams struct {
	UserID   uint
	CourseID uint
	ActorID  uint
}

type UnenrollOutcome struct {
	Deleted  bool
	UserID   uint
	CourseID uint
}

// SyncOutcome reports which table was the source of truth and which were
// corrected. Source is "in_sync" when no divergence was found.
type SyncOutcome struct {
	UserID    uint
	CourseID  uint
	Source    string
	Corrected []string
	Progress  float64
}

const (
	SyncSourceEnrollments = "enrollments"
	SyncSourceProgress    = "student_progress"
	SyncSourceInSync      = "in_sync"
)

type CreateRequestParams struct {
	StudentID uint
	CourseID  uint
	Reason    string
}

type CreateRequestOutcome struct {
	RequestID uint
	StudentID uint
	CourseID  uint
}

type RequestActionParams struct {
	RequestID uint
	AdminID   uint
	Reason    string
}

type ApproveOutcome struct {
	Approved          bool
	EnrollmentCreated bool
	RequestID         uint
	StudentID         uint
	CourseID          uint
	EnrollmentID      uint
	QBankEnrolled     bool
	QBankID           uint
}

type RejectOutcome struct {
	Rejected  bool
	RequestID uint
	StudentID uint
	CourseID  uint
}

type RepairOutcome struct {
	Repaired   int
	RequestIDs []uint
}

// AutoEnrollResult is the question-bank collaborator's tagged result. It is
// inspected by callers but never propagated as an operation failure.
type AutoEnrollResult struct {
	Enrolled bool
	QBankID  uint
}
