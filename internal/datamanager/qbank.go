package datamanager

import (
	"errors"

	"github.com/mvhien/learnhub/internal/model"
	"github.com/mvhien/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// autoEnrollQuestionBank enrolls the student into the course's published,
// active question bank if one exists. It is idempotent and never returns an
// error: Q-Bank access is a best-effort enrichment and must not disturb the
// course enrollment it decorates. It runs after the enrollment transaction
// commits, so a failure here can never roll the enrollment back.
func (m *Manager) autoEnrollQuestionBank(s repository.Store, studentID, courseID uint) (result AutoEnrollResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).
				Uint("student_id", studentID).Uint("course_id", courseID).
				Msg("Question bank auto-enroll panicked")
			result = AutoEnrollResult{}
		}
	}()

	bank, err := s.QBanks().FindPublishedByCourse(courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Uint("course_id", courseID).Msg("Question bank lookup failed, skipping auto-enroll")
		}
		return AutoEnrollResult{}
	}

	existing, err := s.QBanks().FindEnrollment(studentID, bank.ID)
	if err == nil {
		// Already enrolled: report the existing row.
		return AutoEnrollResult{Enrolled: true, QBankID: existing.QuestionBankID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Uint("student_id", studentID).Uint("qbank_id", bank.ID).
			Msg("Question bank enrollment lookup failed, skipping auto-enroll")
		return AutoEnrollResult{}
	}

	enrollment := &model.QBankEnrollment{
		StudentID:      studentID,
		QuestionBankID: bank.ID,
	}
	if err := s.QBanks().CreateEnrollment(enrollment); err != nil {
		if kind, ok := constraintKind(err); ok && kind == KindAlreadyEnrolled {
			// Concurrent auto-enroll won the race; that is still success.
			return AutoEnrollResult{Enrolled: true, QBankID: bank.ID}
		}
		log.Warn().Err(err).Uint("student_id", studentID).Uint("qbank_id", bank.ID).
			Msg("Question bank auto-enroll failed")
		return AutoEnrollResult{}
	}
	return AutoEnrollResult{Enrolled: true, QBankID: bank.ID}
}
