package datamanager

import (
	"errors"
	"testing"

	"github.com/mvhien/learnhub/internal/model"
	"github.com/mvhien/learnhub/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAutoEnrollQuestionBank(t *testing.T) {
	m, store, _, _ := newTestManager()
	seedStudentAndCourse(store, 6, 10, 1)
	store.addQBank(3, 10, true, true)

	out, err := m.EnrollStudent(EnrollParams{StudentID: 6, CourseID: 10, Source: "self", ActorID: 6})
	require.NoError(t, err)
	require.True(t, out.QBankEnrolled)
	require.Equal(t, uint(3), out.QBankID)

	enrollment, err := store.QBanks().FindEnrollment(6, 3)
	require.NoError(t, err)
	require.Zero(t, enrollment.Progress)
	require.Zero(t, enrollment.TestsTaken)
}

func TestAutoEnrollNoQuestionBank(t *testing.T) {
	m, store, _, _ := newTestManager()
	seedStudentAndCourse(store, 6, 10, 1)

	out, err := m.EnrollStudent(EnrollParams{StudentID: 6, CourseID: 10, Source: "self", ActorID: 6})
	require.NoError(t, err)
	require.False(t, out.QBankEnrolled)
	require.Empty(t, store.qbankEnrolls)
}

func TestAutoEnrollSkipsUnpublishedAndInactiveBanks(t *testing.T) {
	for name, bank := range map[string]struct{ published, active bool }{
		"unpublished": {published: false, active: true},
		"inactive":    {published: true, active: false},
	} {
		t.Run(name, func(t *testing.T) {
			m, store, _, _ := newTestManager()
			seedStudentAndCourse(store, 6, 10, 1)
			store.addQBank(3, 10, bank.published, bank.active)

			out, err := m.EnrollStudent(EnrollParams{StudentID: 6, CourseID: 10, Source: "self", ActorID: 6})
			require.NoError(t, err)
			require.False(t, out.QBankEnrolled)
		})
	}
}

func TestAutoEnrollIsIdempotent(t *testing.T) {
	m, store, _, _ := newTestManager()
	seedStudentAndCourse(store, 6, 10, 1)
	store.addQBank(3, 10, true, true)

	first := m.autoEnrollQuestionBank(store, 6, 10)
	require.True(t, first.Enrolled)

	second := m.autoEnrollQuestionBank(store, 6, 10)
	require.True(t, second.Enrolled)
	require.Equal(t, first.QBankID, second.QBankID)
	require.Len(t, store.qbankEnrolls, 1)
}

func TestAutoEnrollRaceLoserStillReportsEnrolled(t *testing.T) {
	m, store, _, _ := newTestManager()
	seedStudentAndCourse(store, 6, 10, 1)
	store.addQBank(3, 10, true, true)
	store.failQBank = uniqueViolation("idx_qbank_enrollments_pair")

	out := m.autoEnrollQuestionBank(store, 6, 10)
	require.True(t, out.Enrolled)
	require.Equal(t, uint(3), out.QBankID)
}

func TestAutoEnrollFailureNeverFailsTheEnrollment(t *testing.T) {
	m, store, _, _ := newTestManager()
	seedStudentAndCourse(store, 6, 10, 1)
	store.addQBank(3, 10, true, true)
	store.failQBank = errors.New("qbank table unavailable")

	out, err := m.EnrollStudent(EnrollParams{StudentID: 6, CourseID: 10, Source: "self", ActorID: 6})
	require.NoError(t, err)
	require.False(t, out.QBankEnrolled)

	// The course enrollment itself is untouched by the side-step failure.
	_, err = store.Enrollments().FindByUserAndCourse(6, 10)
	require.NoError(t, err)
	_, err = store.Progress().FindByStudentAndCourse(6, 10)
	require.NoError(t, err)
}

type panicQBankRepo struct{ repository.QBankRepository }

func (panicQBankRepo) FindPublishedByCourse(uint) (*model.QuestionBank, error) {
	panic("qbank repo poisoned")
}

type panicQBankStore struct{ repository.Store }

func (s panicQBankStore) QBanks() repository.QBankRepository { return panicQBankRepo{} }

func TestAutoEnrollRecoversFromPanic(t *testing.T) {
	m, store, _, _ := newTestManager()
	seedStudentAndCourse(store, 6, 10, 1)

	var out AutoEnrollResult
	require.NotPanics(t, func() {
		out = m.autoEnrollQuestionBank(panicQBankStore{Store: store}, 6, 10)
	})
	require.False(t, out.Enrolled)
}
