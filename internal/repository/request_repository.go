package repository

import (
	"time"

	"github.com/mvhien/learnhub/internal/model"
	"gorm.io/gorm"
)

type RequestRepository interface {
	WithTx(tx *gorm.DB) RequestRepository
	Create(request *model.AccessRequest) error
	// FindByID also sees soft-deleted (processed) rows so callers can tell
	// "already reviewed" apart from "never existed".
	FindByID(id uint) (*model.AccessRequest, error)
	FindPendingByStudentAndCourse(studentID, courseID uint) (*model.AccessRequest, error)
	FindAllPending() ([]model.AccessRequest, error)
	FindAllByStudent(studentID uint) ([]model.AccessRequest, error)
	FindStuck() ([]model.AccessRequest, error)
	// MarkReviewed stamps status, reviewed_at and reviewed_by in a single
	// statement and only if the row is still pending, so the inconsistent
	// "reviewed but pending" intermediate state cannot be produced.
	MarkReviewed(id uint, status string, adminID uint, reviewedAt time.Time, note string) (int64, error)
	Delete(id uint) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) WithTx(tx *gorm.DB) RequestRepository {
	return &requestRepository{db: tx}
}

func (r *requestRepository) Create(request *model.AccessRequest) error {
	return r.db.Create(request).Error
}

func (r *requestRepository) FindByID(id uint) (*model.AccessRequest, error) {
	var request model.AccessRequest
	if err := r.db.Unscoped().First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindPendingByStudentAndCourse(studentID, courseID uint) (*model.AccessRequest, error) {
	var request model.AccessRequest
	err := r.db.
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, model.RequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindAllPending() ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	err := r.db.Where("status = ?", model.RequestStatusPending).Order("requested_at ASC").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindAllByStudent(studentID uint) ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	err := r.db.Where("student_id = ?", studentID).Order("requested_at DESC").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindStuck() ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	err := r.db.
		Where("reviewed_at IS NOT NULL AND status = ?", model.RequestStatusPending).
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) MarkReviewed(id uint, status string, adminID uint, reviewedAt time.Time, note string) (int64, error) {
	res := r.db.Model(&model.AccessRequest{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": reviewedAt,
			"reviewed_by": adminID,
			"review_note": note,
		})
	return res.RowsAffected, res.Error
}

func (r *requestRepository) Delete(id uint) error {
	return r.db.Delete(&model.AccessRequest{}, id).Error
}
