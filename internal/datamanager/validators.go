package datamanager

import (
	"errors"

	"github.com/mvhien/learnhub/internal/repository"
	"gorm.io/gorm"
)

// Validators run outside any transaction and never mutate state. They give
// callers fast, clear failures for the common cases; the critical invariants
// are re-checked inside the transaction by the operations themselves
// (validate-then-verify), so a race slipping past a validator is still
// caught before commit.

func (m *Manager) validateEnrollment(studentID, courseID uint) error {
	course, err := m.store.Courses().FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "course %d not found", courseID)
		}
		return wrapError(KindOperationFailed, err, "looking up course %d", courseID)
	}
	if !course.Enrollable() {
		return newError(KindInvalidState, "course %d is not open for enrollment (status %s)", courseID, course.Status)
	}

	student, err := m.store.Users().FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "student %d not found", studentID)
		}
		return wrapError(KindOperationFailed, err, "looking up student %d", studentID)
	}
	if !student.IsStudent() {
		return newError(KindForbidden, "user %d does not hold the student role", studentID)
	}

	return m.checkNotEnrolled(m.store, studentID, courseID)
}

func (m *Manager) validateUnenrollment(userID, courseID uint) error {
	_, err := m.store.Enrollments().FindByUserAndCourse(userID, courseID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapError(KindOperationFailed, err, "looking up enrollment")
	}
	_, err = m.store.Progress().FindByStudentAndCourse(userID, courseID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapError(KindOperationFailed, err, "looking up progress record")
	}
	return newError(KindNotEnrolled, "user %d is not enrolled in course %d", userID, courseID)
}

func (m *Manager) validateRequestCreation(studentID, courseID uint) error {
	if err := m.validateEnrollment(studentID, courseID); err != nil {
		return err
	}
	_, err := m.store.Requests().FindPendingByStudentAndCourse(studentID, courseID)
	if err == nil {
		return newError(KindDuplicateRequest, "student %d already has a pending request for course %d", studentID, courseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapError(KindOperationFailed, err, "looking up pending request")
	}
	return nil
}

func (m *Manager) validateRequestAction(requestID, adminID uint) error {
	admin, err := m.store.Users().FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindForbidden, "reviewer %d not found", adminID)
		}
		return wrapError(KindOperationFailed, err, "looking up reviewer %d", adminID)
	}
	if !admin.IsAdmin() {
		return newError(KindForbidden, "user %d does not hold the admin role", adminID)
	}

	request, err := m.store.Requests().FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "request %d not found", requestID)
		}
		return wrapError(KindOperationFailed, err, "looking up request %d", requestID)
	}
	if request.DeletedAt.Valid || !request.IsPending() {
		return newError(KindInvalidState, "request %d is not pending (status %s)", requestID, request.Status)
	}
	return nil
}

// checkNotEnrolled fails with AlreadyEnrolled when either enrollment table
// has an active record for the pair. Shared between the pre-check validators
// and the in-transaction re-checks.
func (m *Manager) checkNotEnrolled(s repository.Store, studentID, courseID uint) error {
	enrollment, err := s.Enrollments().FindByUserAndCourse(studentID, courseID)
	if err == nil {
		if enrollment.IsActive() {
			return newError(KindAlreadyEnrolled, "student %d is already enrolled in course %d", studentID, courseID)
		}
		return newError(KindInvalidState, "student %d has a suspended enrollment in course %d", studentID, courseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapError(KindOperationFailed, err, "looking up enrollment")
	}
	_, err = s.Progress().FindByStudentAndCourse(studentID, courseID)
	if err == nil {
		return newError(KindAlreadyEnrolled, "student %d already has a progress record for course %d", studentID, courseID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapError(KindOperationFailed, err, "looking up progress record")
	}
	return nil
}
