package repository

import (
	"github.com/mvhien/learnhub/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	WithTx(tx *gorm.DB) CourseRepository
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindAllPublishedWithEnrollmentCount() ([]CourseWithEnrollmentCount, error)
}

// CourseWithEnrollmentCount is the listing projection for the catalog.
type CourseWithEnrollmentCount struct {
	model.Course
	EnrollmentCount int
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) WithTx(tx *gorm.DB) CourseRepository {
	return &courseRepository{db: tx}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAllPublishedWithEnrollmentCount() ([]CourseWithEnrollmentCount, error) {
	var results []CourseWithEnrollmentCount
	err := r.db.Model(&model.Course{}).
		Select("courses.*, (SELECT COUNT(*) FROM enrollments WHERE enrollments.course_id = courses.id) as enrollment_count").
		Where("courses.status IN ?", []string{model.CourseStatusPublished, model.CourseStatusActive}).
		Where("courses.deleted_at IS NULL").
		Order("courses.created_at DESC").
		Scan(&results).Error
	return results, err
}
