package repository

import (
	"github.com/mvhien/learnhub/internal/model"
	"gorm.io/gorm"
)

type QBankRepository interface {
	WithTx(tx *gorm.DB) QBankRepository
	Create(bank *model.QuestionBank) error
	FindPublishedByCourse(courseID uint) (*model.QuestionBank, error)
	FindAllWithQuestionCount() ([]QBankWithQuestionCount, error)
	FindEnrollment(studentID, qbankID uint) (*model.QBankEnrollment, error)
	CreateEnrollment(enrollment *model.QBankEnrollment) error
}

type QBankWithQuestionCount struct {
	model.QuestionBank
	QuestionCount int
}

type qbankRepository struct {
	db *gorm.DB
}

func NewQBankRepository(db *gorm.DB) QBankRepository {
	return &qbankRepository{db: db}
}

func (r *qbankRepository) WithTx(tx *gorm.DB) QBankRepository {
	return &qbankRepository{db: tx}
}

func (r *qbankRepository) Create(bank *model.QuestionBank) error {
	// GORM creates associated questions when bank.Questions is populated.
	return r.db.Create(bank).Error
}

func (r *qbankRepository) FindPublishedByCourse(courseID uint) (*model.QuestionBank, error) {
	var bank model.QuestionBank
	err := r.db.
		Where("course_id = ? AND published = ? AND active = ?", courseID, true, true).
		First(&bank).Error
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *qbankRepository) FindAllWithQuestionCount() ([]QBankWithQuestionCount, error) {
	var results []QBankWithQuestionCount
	err := r.db.Model(&model.QuestionBank{}).
		Select("question_banks.*, (SELECT COUNT(*) FROM questions WHERE questions.question_bank_id = question_banks.id AND questions.deleted_at IS NULL) as question_count").
		Where("question_banks.deleted_at IS NULL").
		Order("question_banks.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *qbankRepository) FindEnrollment(studentID, qbankID uint) (*model.QBankEnrollment, error) {
	var enrollment model.QBankEnrollment
	err := r.db.Where("student_id = ? AND question_bank_id = ?", studentID, qbankID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *qbankRepository) CreateEnrollment(enrollment *model.QBankEnrollment) error {
	return r.db.Create(enrollment).Error
}
