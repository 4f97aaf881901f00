package repository

import "gorm.io/gorm"

// Store bundles the repositories the data manager works with and lets a
// group of writes run atomically. Atomic hands the callback a Store whose
// repositories are bound to one database transaction; returning an error
// rolls everything back.
type Store interface {
	Users() UserRepository
	Courses() CourseRepository
	Enrollments() EnrollmentRepository
	Progress() ProgressRepository
	Requests() RequestRepository
	QBanks() QBankRepository
	Atomic(fn func(tx Store) error) error
}

type gormStore struct {
	db          *gorm.DB
	users       UserRepository
	courses     CourseRepository
	enrollments EnrollmentRepository
	progress    ProgressRepository
	requests    RequestRepository
	qbanks      QBankRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		users:       NewUserRepository(db),
		courses:     NewCourseRepository(db),
		enrollments: NewEnrollmentRepository(db),
		progress:    NewProgressRepository(db),
		requests:    NewRequestRepository(db),
		qbanks:      NewQBankRepository(db),
	}
}

func (s *gormStore) Users() UserRepository              { return s.users }
func (s *gormStore) Courses() CourseRepository          { return s.courses }
func (s *gormStore) Enrollments() EnrollmentRepository  { return s.enrollments }
func (s *gormStore) Progress() ProgressRepository       { return s.progress }
func (s *gormStore) Requests() RequestRepository        { return s.requests }
func (s *gormStore) QBanks() QBankRepository            { return s.qbanks }

func (s *gormStore) Atomic(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
