package datamanager

import (
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mvhien/learnhub/internal/model"
	"github.com/mvhien/learnhub/internal/repository"
	"gorm.io/gorm"
)

// memStore is an in-memory repository.Store double. It emulates the pieces
// of postgres the data manager relies on: record-not-found sentinels,
// unique indexes reported as pgconn errors with the real constraint names,
// and transaction rollback on error. Failures can be queued to exercise the
// retry path.
type memStore struct {
	users        map[uint]model.User
	courses      map[uint]model.Course
	enrollments  map[uint]model.Enrollment
	progress     map[uint]model.StudentProgress
	requests     map[uint]model.AccessRequest
	qbanks       map[uint]model.QuestionBank
	qbankEnrolls map[uint]model.QBankEnrollment
	nextID       uint

	atomicCalls    int
	failAtomic     []error // popped per Atomic call, returned before fn runs
	failEnrollment error   // one-shot error on next enrollment insert
	failProgress   error   // one-shot error on next progress insert
	failQBank      error   // one-shot error on next qbank enrollment insert
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[uint]model.User{},
		courses:      map[uint]model.Course{},
		enrollments:  map[uint]model.Enrollment{},
		progress:     map[uint]model.StudentProgress{},
		requests:     map[uint]model.AccessRequest{},
		qbanks:       map[uint]model.QuestionBank{},
		qbankEnrolls: map[uint]model.QBankEnrollment{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) Atomic(fn func(tx repository.Store) error) error {
	s.atomicCalls++
	if len(s.failAtomic) > 0 {
		err := s.failAtomic[0]
		s.failAtomic = s.failAtomic[1:]
		if err != nil {
			return err
		}
	}

	users, courses := copyMap(s.users), copyMap(s.courses)
	enrollments, progress := copyMap(s.enrollments), copyMap(s.progress)
	requests, qbanks, qbankEnrolls := copyMap(s.requests), copyMap(s.qbanks), copyMap(s.qbankEnrolls)
	nextID := s.nextID

	if err := fn(s); err != nil {
		s.users, s.courses = users, courses
		s.enrollments, s.progress = enrollments, progress
		s.requests, s.qbanks, s.qbankEnrolls = requests, qbanks, qbankEnrolls
		s.nextID = nextID
		return err
	}
	return nil
}

func (s *memStore) Users() repository.UserRepository             { return memUsers{s} }
func (s *memStore) Courses() repository.CourseRepository         { return memCourses{s} }
func (s *memStore) Enrollments() repository.EnrollmentRepository { return memEnrollments{s} }
func (s *memStore) Progress() repository.ProgressRepository      { return memProgress{s} }
func (s *memStore) Requests() repository.RequestRepository       { return memRequests{s} }
func (s *memStore) QBanks() repository.QBankRepository           { return memQBanks{s} }

// --- seeding helpers ---

func (s *memStore) addUser(id uint, role string) {
	s.users[id] = model.User{ID: id, Role: role}
}

func (s *memStore) addCourse(id uint, status string) {
	s.courses[id] = model.Course{ID: id, Status: status}
}

func (s *memStore) addEnrollment(userID, courseID uint, prog float64) uint {
	id := s.id()
	s.enrollments[id] = model.Enrollment{
		ID: id, UserID: userID, CourseID: courseID,
		Status: model.EnrollmentStatusActive, Progress: prog, EnrolledAt: time.Now(),
	}
	return id
}

func (s *memStore) addProgress(studentID, courseID uint, prog float64) uint {
	id := s.id()
	s.progress[id] = model.StudentProgress{
		ID: id, StudentID: studentID, CourseID: courseID,
		TotalProgress: prog, LastAccessed: time.Now(),
	}
	return id
}

func (s *memStore) addRequest(studentID, courseID uint, status string) uint {
	id := s.id()
	s.requests[id] = model.AccessRequest{
		ID: id, StudentID: studentID, CourseID: courseID,
		Status: status, RequestedAt: time.Now(),
	}
	return id
}

func (s *memStore) addQBank(id uint, courseID uint, published, active bool) {
	cid := courseID
	s.qbanks[id] = model.QuestionBank{ID: id, CourseID: &cid, Published: published, Active: active}
}

// --- repositories ---

type memUsers struct{ s *memStore }

func (r memUsers) WithTx(tx *gorm.DB) repository.UserRepository { return r }
func (r memUsers) Create(user *model.User) error {
	if user.ID == 0 {
		user.ID = r.s.id()
	}
	r.s.users[user.ID] = *user
	return nil
}
func (r memUsers) FindByID(id uint) (*model.User, error) {
	if u, ok := r.s.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memUsers) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memCourses struct{ s *memStore }

func (r memCourses) WithTx(tx *gorm.DB) repository.CourseRepository { return r }
func (r memCourses) Create(course *model.Course) error {
	if course.ID == 0 {
		course.ID = r.s.id()
	}
	r.s.courses[course.ID] = *course
	return nil
}
func (r memCourses) FindByID(id uint) (*model.Course, error) {
	if c, ok := r.s.courses[id]; ok {
		out := c
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memCourses) FindAllPublishedWithEnrollmentCount() ([]repository.CourseWithEnrollmentCount, error) {
	var out []repository.CourseWithEnrollmentCount
	for _, c := range r.s.courses {
		if c.Enrollable() {
			out = append(out, repository.CourseWithEnrollmentCount{Course: c})
		}
	}
	return out, nil
}

type memEnrollments struct{ s *memStore }

func (r memEnrollments) WithTx(tx *gorm.DB) repository.EnrollmentRepository { return r }
func (r memEnrollments) Create(e *model.Enrollment) error {
	if err := r.s.failEnrollment; err != nil {
		r.s.failEnrollment = nil
		return err
	}
	for _, existing := range r.s.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return uniqueViolation("idx_enrollments_user_course")
		}
	}
	if e.ID == 0 {
		e.ID = r.s.id()
	}
	r.s.enrollments[e.ID] = *e
	return nil
}
func (r memEnrollments) Save(e *model.Enrollment) error {
	r.s.enrollments[e.ID] = *e
	return nil
}
func (r memEnrollments) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	for _, e := range r.s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			out := e
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memEnrollments) FindAllByUser(userID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range r.s.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r memEnrollments) DeleteByUserAndCourse(userID, courseID uint) (int64, error) {
	var deleted int64
	for id, e := range r.s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			delete(r.s.enrollments, id)
			deleted++
		}
	}
	return deleted, nil
}

type memProgress struct{ s *memStore }

func (r memProgress) WithTx(tx *gorm.DB) repository.ProgressRepository { return r }
func (r memProgress) Create(p *model.StudentProgress) error {
	if err := r.s.failProgress; err != nil {
		r.s.failProgress = nil
		return err
	}
	for _, existing := range r.s.progress {
		if existing.StudentID == p.StudentID && existing.CourseID == p.CourseID {
			return uniqueViolation("idx_student_progress_pair")
		}
	}
	if p.ID == 0 {
		p.ID = r.s.id()
	}
	r.s.progress[p.ID] = *p
	return nil
}
func (r memProgress) Save(p *model.StudentProgress) error {
	r.s.progress[p.ID] = *p
	return nil
}
func (r memProgress) FindByStudentAndCourse(studentID, courseID uint) (*model.StudentProgress, error) {
	for _, p := range r.s.progress {
		if p.StudentID == studentID && p.CourseID == courseID {
			out := p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memProgress) DeleteByStudentAndCourse(studentID, courseID uint) (int64, error) {
	var deleted int64
	for id, p := range r.s.progress {
		if p.StudentID == studentID && p.CourseID == courseID {
			delete(r.s.progress, id)
			deleted++
		}
	}
	return deleted, nil
}

type memRequests struct{ s *memStore }

func (r memRequests) WithTx(tx *gorm.DB) repository.RequestRepository { return r }
func (r memRequests) Create(req *model.AccessRequest) error {
	if req.ID == 0 {
		req.ID = r.s.id()
	}
	r.s.requests[req.ID] = *req
	return nil
}
func (r memRequests) FindByID(id uint) (*model.AccessRequest, error) {
	if req, ok := r.s.requests[id]; ok {
		out := req
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memRequests) FindPendingByStudentAndCourse(studentID, courseID uint) (*model.AccessRequest, error) {
	for _, req := range r.s.requests {
		if req.StudentID == studentID && req.CourseID == courseID &&
			req.Status == model.RequestStatusPending && !req.DeletedAt.Valid {
			out := req
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memRequests) FindAllPending() ([]model.AccessRequest, error) {
	var out []model.AccessRequest
	for _, req := range r.s.requests {
		if req.Status == model.RequestStatusPending && !req.DeletedAt.Valid {
			out = append(out, req)
		}
	}
	return out, nil
}
func (r memRequests) FindAllByStudent(studentID uint) ([]model.AccessRequest, error) {
	var out []model.AccessRequest
	for _, req := range r.s.requests {
		if req.StudentID == studentID && !req.DeletedAt.Valid {
			out = append(out, req)
		}
	}
	return out, nil
}
func (r memRequests) FindStuck() ([]model.AccessRequest, error) {
	var out []model.AccessRequest
	for _, req := range r.s.requests {
		if req.ReviewedAt != nil && req.Status == model.RequestStatusPending && !req.DeletedAt.Valid {
			out = append(out, req)
		}
	}
	return out, nil
}
func (r memRequests) MarkReviewed(id uint, status string, adminID uint, reviewedAt time.Time, note string) (int64, error) {
	req, ok := r.s.requests[id]
	if !ok || req.DeletedAt.Valid || req.Status != model.RequestStatusPending {
		return 0, nil
	}
	req.Status = status
	req.ReviewedAt = &reviewedAt
	req.ReviewedBy = &adminID
	req.ReviewNote = note
	r.s.requests[id] = req
	return 1, nil
}
func (r memRequests) Delete(id uint) error {
	req, ok := r.s.requests[id]
	if !ok {
		return nil
	}
	req.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.s.requests[id] = req
	return nil
}

type memQBanks struct{ s *memStore }

func (r memQBanks) WithTx(tx *gorm.DB) repository.QBankRepository { return r }
func (r memQBanks) Create(bank *model.QuestionBank) error {
	if bank.ID == 0 {
		bank.ID = r.s.id()
	}
	r.s.qbanks[bank.ID] = *bank
	return nil
}
func (r memQBanks) FindPublishedByCourse(courseID uint) (*model.QuestionBank, error) {
	for _, bank := range r.s.qbanks {
		if bank.CourseID != nil && *bank.CourseID == courseID && bank.Published && bank.Active {
			out := bank
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memQBanks) FindAllWithQuestionCount() ([]repository.QBankWithQuestionCount, error) {
	var out []repository.QBankWithQuestionCount
	for _, bank := range r.s.qbanks {
		out = append(out, repository.QBankWithQuestionCount{QuestionBank: bank})
	}
	return out, nil
}
func (r memQBanks) FindEnrollment(studentID, qbankID uint) (*model.QBankEnrollment, error) {
	for _, e := range r.s.qbankEnrolls {
		if e.StudentID == studentID && e.QuestionBankID == qbankID {
			out := e
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r memQBanks) CreateEnrollment(e *model.QBankEnrollment) error {
	if err := r.s.failQBank; err != nil {
		r.s.failQBank = nil
		return err
	}
	for _, existing := range r.s.qbankEnrolls {
		if existing.StudentID == e.StudentID && existing.QuestionBankID == e.QuestionBankID {
			return uniqueViolation("idx_qbank_enrollments_pair")
		}
	}
	if e.ID == 0 {
		e.ID = r.s.id()
	}
	r.s.qbankEnrolls[e.ID] = *e
	return nil
}
