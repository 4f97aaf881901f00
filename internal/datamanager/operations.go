package datamanager

import (
	"errors"
	"time"

	"github.com/mvhien/learnhub/internal/model"
	"github.com/mvhien/learnhub/internal/repository"
	"gorm.io/gorm"
)

// Operations run strictly inside the transaction opened by the executor.
// Each re-verifies its critical invariant before writing: the pre-check
// validator runs outside the transaction and can lose a race.

func (m *Manager) enrollStudent(tx repository.Store, p EnrollParams) (EnrollOutcome, error) {
	if err := m.checkNotEnrolled(tx, p.StudentID, p.CourseID); err != nil {
		return EnrollOutcome{}, err
	}

	now := time.Now()
	enrollment := &model.Enrollment{
		UserID:     p.StudentID,
		CourseID:   p.CourseID,
		Status:     model.EnrollmentStatusActive,
		Progress:   0,
		Source:     p.Source,
		EnrolledAt: now,
	}
	if err := tx.Enrollments().Create(enrollment); err != nil {
		return EnrollOutcome{}, err
	}

	// Dual-table write: the progress record is created in the same
	// transaction so both tables agree the moment either is readable.
	record := &model.StudentProgress{
		StudentID:     p.StudentID,
		CourseID:      p.CourseID,
		TotalProgress: 0,
		LastAccessed:  now,
	}
	if err := tx.Progress().Create(record); err != nil {
		return EnrollOutcome{}, err
	}

	return EnrollOutcome{
		EnrollmentID:     enrollment.ID,
		ProgressRecordID: record.ID,
		StudentID:        p.StudentID,
		CourseID:         p.CourseID,
		Source:           p.Source,
	}, nil
}

func (m *Manager) unenrollStudent(tx repository.Store, p UnenrollParams) (UnenrollOutcome, error) {
	enrollmentsDeleted, err := tx.Enrollments().DeleteByUserAndCourse(p.UserID, p.CourseID)
	if err != nil {
		return UnenrollOutcome{}, err
	}
	progressDeleted, err := tx.Progress().DeleteByStudentAndCourse(p.UserID, p.CourseID)
	if err != nil {
		return UnenrollOutcome{}, err
	}
	if enrollmentsDeleted == 0 && progressDeleted == 0 {
		return UnenrollOutcome{}, newError(KindNotEnrolled, "user %d is not enrolled in course %d", p.UserID, p.CourseID)
	}
	return UnenrollOutcome{Deleted: true, UserID: p.UserID, CourseID: p.CourseID}, nil
}

func (m *Manager) syncEnrollmentState(tx repository.Store, userID, courseID uint) (SyncOutcome, error) {
	enrollment, err := tx.Enrollments().FindByUserAndCourse(userID, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SyncOutcome{}, err
		}
		enrollment = nil
	}
	record, err := tx.Progress().FindByStudentAndCourse(userID, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SyncOutcome{}, err
		}
		record = nil
	}

	out := SyncOutcome{UserID: userID, CourseID: courseID}
	now := time.Now()

	switch {
	case enrollment == nil && record == nil:
		return SyncOutcome{}, newError(KindNotEnrolled, "user %d has no enrollment state for course %d", userID, courseID)

	case record == nil:
		// Enrollment side exists alone: recreate the progress record from it.
		if err := tx.Progress().Create(&model.StudentProgress{
			StudentID:     userID,
			CourseID:      courseID,
			TotalProgress: enrollment.Progress,
			LastAccessed:  now,
		}); err != nil {
			return SyncOutcome{}, err
		}
		out.Source = SyncSourceEnrollments
		out.Corrected = []string{"student_progress"}
		out.Progress = enrollment.Progress

	case enrollment == nil:
		if err := tx.Enrollments().Create(&model.Enrollment{
			UserID:     userID,
			CourseID:   courseID,
			Status:     model.EnrollmentStatusActive,
			Progress:   record.TotalProgress,
			Source:     "sync",
			EnrolledAt: now,
		}); err != nil {
			return SyncOutcome{}, err
		}
		out.Source = SyncSourceProgress
		out.Corrected = []string{"enrollments"}
		out.Progress = record.TotalProgress

	case enrollment.Progress == record.TotalProgress:
		out.Source = SyncSourceInSync
		out.Progress = enrollment.Progress

	case enrollment.Progress > record.TotalProgress:
		// Monotonic-progress policy: the more advanced value wins.
		record.TotalProgress = enrollment.Progress
		record.LastAccessed = now
		if err := tx.Progress().Save(record); err != nil {
			return SyncOutcome{}, err
		}
		out.Source = SyncSourceEnrollments
		out.Corrected = []string{"student_progress"}
		out.Progress = enrollment.Progress

	default:
		enrollment.Progress = record.TotalProgress
		if err := tx.Enrollments().Save(enrollment); err != nil {
			return SyncOutcome{}, err
		}
		out.Source = SyncSourceProgress
		out.Corrected = []string{"enrollments"}
		out.Progress = record.TotalProgress
	}

	return out, nil
}

func (m *Manager) createRequest(tx repository.Store, p CreateRequestParams) (CreateRequestOutcome, error) {
	if err := m.checkNotEnrolled(tx, p.StudentID, p.CourseID); err != nil {
		return CreateRequestOutcome{}, err
	}
	_, err := tx.Requests().FindPendingByStudentAndCourse(p.StudentID, p.CourseID)
	if err == nil {
		return CreateRequestOutcome{}, newError(KindDuplicateRequest, "student %d already has a pending request for course %d", p.StudentID, p.CourseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CreateRequestOutcome{}, err
	}

	request := &model.AccessRequest{
		StudentID:   p.StudentID,
		CourseID:    p.CourseID,
		Status:      model.RequestStatusPending,
		Reason:      p.Reason,
		RequestedAt: time.Now(),
	}
	if err := tx.Requests().Create(request); err != nil {
		return CreateRequestOutcome{}, err
	}
	return CreateRequestOutcome{RequestID: request.ID, StudentID: p.StudentID, CourseID: p.CourseID}, nil
}

func (m *Manager) approveRequest(tx repository.Store, p RequestActionParams) (ApproveOutcome, error) {
	request, err := m.pendingRequest(tx, p.RequestID)
	if err != nil {
		return ApproveOutcome{}, err
	}

	enrollOut, err := m.enrollStudent(tx, EnrollParams{
		StudentID: request.StudentID,
		CourseID:  request.CourseID,
		Source:    "request",
		ActorID:   p.AdminID,
	})
	if err != nil {
		return ApproveOutcome{}, err
	}

	// Status, reviewed_at and reviewed_by move in one statement guarded on
	// "still pending", so a reviewed-but-pending row cannot be produced.
	rows, err := tx.Requests().MarkReviewed(request.ID, model.RequestStatusApproved, p.AdminID, time.Now(), p.Reason)
	if err != nil {
		return ApproveOutcome{}, err
	}
	if rows == 0 {
		return ApproveOutcome{}, newError(KindInvalidState, "request %d was processed concurrently", p.RequestID)
	}
	// Soft delete: gone from the pending queue and id lookups, retained in
	// the table as audit history.
	if err := tx.Requests().Delete(request.ID); err != nil {
		return ApproveOutcome{}, err
	}

	return ApproveOutcome{
		Approved:          true,
		EnrollmentCreated: true,
		RequestID:         request.ID,
		StudentID:         request.StudentID,
		CourseID:          request.CourseID,
		EnrollmentID:      enrollOut.EnrollmentID,
	}, nil
}

func (m *Manager) rejectRequest(tx repository.Store, p RequestActionParams) (RejectOutcome, error) {
	request, err := m.pendingRequest(tx, p.RequestID)
	if err != nil {
		return RejectOutcome{}, err
	}

	rows, err := tx.Requests().MarkReviewed(request.ID, model.RequestStatusRejected, p.AdminID, time.Now(), p.Reason)
	if err != nil {
		return RejectOutcome{}, err
	}
	if rows == 0 {
		return RejectOutcome{}, newError(KindInvalidState, "request %d was processed concurrently", p.RequestID)
	}
	if err := tx.Requests().Delete(request.ID); err != nil {
		return RejectOutcome{}, err
	}

	return RejectOutcome{Rejected: true, RequestID: request.ID, StudentID: request.StudentID, CourseID: request.CourseID}, nil
}

// repairStuckRequests rejects legacy rows whose review timestamp was set
// while the status stayed pending. New rows cannot reach that state anymore
// because MarkReviewed stamps everything atomically.
func (m *Manager) repairStuckRequests(tx repository.Store, adminID uint) (RepairOutcome, error) {
	stuck, err := tx.Requests().FindStuck()
	if err != nil {
		return RepairOutcome{}, err
	}
	out := RepairOutcome{}
	for _, request := range stuck {
		rows, err := tx.Requests().MarkReviewed(request.ID, model.RequestStatusRejected, adminID, time.Now(), "auto-repaired: review stamp without terminal status")
		if err != nil {
			return RepairOutcome{}, err
		}
		if rows == 0 {
			continue
		}
		if err := tx.Requests().Delete(request.ID); err != nil {
			return RepairOutcome{}, err
		}
		out.Repaired++
		out.RequestIDs = append(out.RequestIDs, request.ID)
	}
	return out, nil
}

func (m *Manager) pendingRequest(tx repository.Store, requestID uint) (*model.AccessRequest, error) {
	request, err := tx.Requests().FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "request %d not found", requestID)
		}
		return nil, err
	}
	if request.DeletedAt.Valid || !request.IsPending() {
		return nil, newError(KindInvalidState, "request %d is not pending (status %s)", requestID, request.Status)
	}
	return request, nil
}
