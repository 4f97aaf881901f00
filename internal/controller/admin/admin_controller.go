package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/mvhien/learnhub/internal/controller"
	"github.com/mvhien/learnhub/internal/datamanager"
	"github.com/mvhien/learnhub/internal/dto"
	"github.com/mvhien/learnhub/internal/middleware"
	"github.com/mvhien/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	dataManager *datamanager.Manager
	requestRepo repository.RequestRepository
	qbankRepo   repository.QBankRepository
}

func NewAdminController(dm *datamanager.Manager, requestRepo repository.RequestRepository, qbankRepo repository.QBankRepository) *AdminController {
	return &AdminController{dataManager: dm, requestRepo: requestRepo, qbankRepo: qbankRepo}
}

// ListPendingRequests godoc
// @Summary (Admin) List pending access requests
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.AccessRequestResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/requests [get]
func (c *AdminController) ListPendingRequests(ctx *gin.Context) {
	requests, err := c.requestRepo.FindAllPending()
	if err != nil {
		log.Error().Err(err).Msg("ListPendingRequests: repository error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve requests"})
		return
	}
	resp := make([]dto.AccessRequestResponseDTO, len(requests))
	for i := range requests {
		copier.Copy(&resp[i], &requests[i])
	}
	ctx.JSON(http.StatusOK, resp)
}

// ApproveRequest godoc
// @Summary (Admin) Approve a pending access request
// @Description Enrolls the student into the course and closes the request in one transaction.
// @Tags Admin
// @Produce json
// @Param request_id path int true "Request ID"
// @Success 200 {object} dto.ApproveResultDTO
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending or student already enrolled"
// @Router /admin/requests/{request_id}/approve [post]
func (c *AdminController) ApproveRequest(ctx *gin.Context) {
	requestID, err := strconv.ParseUint(ctx.Param("request_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request ID format"})
		return
	}
	out, err := c.dataManager.ApproveRequest(datamanager.RequestActionParams{
		RequestID: uint(requestID),
		AdminID:   middleware.PrincipalID(ctx),
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ApproveResultDTO{
		Approved:          out.Approved,
		EnrollmentCreated: out.EnrollmentCreated,
		EnrollmentID:      out.EnrollmentID,
		QBankEnrolled:     out.QBankEnrolled,
	})
}

// RejectRequest godoc
// @Summary (Admin) Reject a pending access request
// @Tags Admin
// @Accept json
// @Produce json
// @Param request_id path int true "Request ID"
// @Param body body dto.RejectRequestDTO false "Optional reason"
// @Success 200 {object} dto.RejectResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /admin/requests/{request_id}/reject [post]
func (c *AdminController) RejectRequest(ctx *gin.Context) {
	requestID, err := strconv.ParseUint(ctx.Param("request_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request ID format"})
		return
	}
	var req dto.RejectRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	out, err := c.dataManager.RejectRequest(datamanager.RequestActionParams{
		RequestID: uint(requestID),
		AdminID:   middleware.PrincipalID(ctx),
		Reason:    req.Reason,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RejectResultDTO{Rejected: out.Rejected})
}

// EnrollStudent godoc
// @Summary (Admin) Enroll a student directly
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.AdminEnrollDTO true "Student and course"
// @Success 201 {object} dto.EnrollResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /admin/enrollments [post]
func (c *AdminController) EnrollStudent(ctx *gin.Context) {
	var req dto.AdminEnrollDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	source := req.Source
	if source == "" {
		source = "admin"
	}
	out, err := c.dataManager.EnrollStudent(datamanager.EnrollParams{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Source:    source,
		ActorID:   middleware.PrincipalID(ctx),
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.EnrollResultDTO{
		EnrollmentID:  out.EnrollmentID,
		StudentID:     out.StudentID,
		CourseID:      out.CourseID,
		QBankEnrolled: out.QBankEnrolled,
		QBankID:       out.QBankID,
	})
}

// UnenrollStudent godoc
// @Summary (Admin) Remove a student's enrollment
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.AdminUnenrollDTO true "Student and course"
// @Success 200 {object} dto.UnenrollResultDTO
// @Failure 404 {object} dto.ErrorResponse "Not enrolled"
// @Router /admin/enrollments/remove [post]
func (c *AdminController) UnenrollStudent(ctx *gin.Context) {
	var req dto.AdminUnenrollDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	out, err := c.dataManager.UnenrollStudent(datamanager.UnenrollParams{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		ActorID:  middleware.PrincipalID(ctx),
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UnenrollResultDTO{Deleted: out.Deleted})
}

// SyncEnrollment godoc
// @Summary (Admin) Reconcile the two enrollment tables for one pair
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.SyncEnrollmentDTO true "User and course"
// @Success 200 {object} dto.SyncResultDTO
// @Failure 404 {object} dto.ErrorResponse "No enrollment state on either side"
// @Router /admin/enrollments/sync [post]
func (c *AdminController) SyncEnrollment(ctx *gin.Context) {
	var req dto.SyncEnrollmentDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	out, err := c.dataManager.SyncEnrollmentState(req.UserID, req.CourseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SyncResultDTO{
		UserID:    out.UserID,
		CourseID:  out.CourseID,
		Source:    out.Source,
		Corrected: out.Corrected,
		Progress:  out.Progress,
	})
}

// RepairStuckRequests godoc
// @Summary (Admin) Repair requests stuck between reviewed and pending
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.RepairResultDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/requests/repair [post]
func (c *AdminController) RepairStuckRequests(ctx *gin.Context) {
	out, err := c.dataManager.RepairStuckRequests(middleware.PrincipalID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RepairResultDTO{Repaired: out.Repaired, RequestIDs: out.RequestIDs})
}

// ListQuestionBanks godoc
// @Summary (Admin) List question banks with their question counts
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.QBankSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/question-banks [get]
func (c *AdminController) ListQuestionBanks(ctx *gin.Context) {
	banks, err := c.qbankRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("ListQuestionBanks: repository error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve question banks"})
		return
	}
	resp := make([]dto.QBankSummaryDTO, len(banks))
	for i := range banks {
		copier.Copy(&resp[i], &banks[i].QuestionBank)
		resp[i].QuestionCount = banks[i].QuestionCount
	}
	ctx.JSON(http.StatusOK, resp)
}
