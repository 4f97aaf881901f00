package repository

import (
	"github.com/mvhien/learnhub/internal/model"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	WithTx(tx *gorm.DB) ProgressRepository
	Create(record *model.StudentProgress) error
	Save(record *model.StudentProgress) error
	FindByStudentAndCourse(studentID, courseID uint) (*model.StudentProgress, error)
	DeleteByStudentAndCourse(studentID, courseID uint) (int64, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) WithTx(tx *gorm.DB) ProgressRepository {
	return &progressRepository{db: tx}
}

func (r *progressRepository) Create(record *model.StudentProgress) error {
	return r.db.Create(record).Error
}

func (r *progressRepository) Save(record *model.StudentProgress) error {
	return r.db.Save(record).Error
}

func (r *progressRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.StudentProgress, error) {
	var record model.StudentProgress
	err := r.db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *progressRepository) DeleteByStudentAndCourse(studentID, courseID uint) (int64, error) {
	res := r.db.Where("student_id = ? AND course_id = ?", studentID, courseID).Delete(&model.StudentProgress{})
	return res.RowsAffected, res.Error
}
