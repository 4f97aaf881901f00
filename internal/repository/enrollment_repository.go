package repository

import (
	"github.com/mvhien/learnhub/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	WithTx(tx *gorm.DB) EnrollmentRepository
	Create(enrollment *model.Enrollment) error
	Save(enrollment *model.Enrollment) error
	FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error)
	FindAllByUser(userID uint) ([]model.Enrollment, error)
	DeleteByUserAndCourse(userID, courseID uint) (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) WithTx(tx *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: tx}
}

func (r *enrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) Save(enrollment *model.Enrollment) error {
	return r.db.Save(enrollment).Error
}

func (r *enrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindAllByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Where("user_id = ?", userID).Order("enrolled_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepository) DeleteByUserAndCourse(userID, courseID uint) (int64, error) {
	res := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&model.Enrollment{})
	return res.RowsAffected, res.Error
}
