package student

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
	"github.com/mvhien/learnhub/internal/service"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	dataManager     *datamanager.Manager
	courseRepo      repository.CourseRepository
	enrollmentRepo  repository.EnrollmentRepository
	requestRepo     repository.RequestRepository
	notificationSvc service.NotificationService
}

func NewStudentController(
	dm *datamanager.Manager,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	requestRepo repository.RequestRepository,
	notificationSvc service.NotificationService,
) *StudentController {
	return &StudentController{
		dataManager:     dm,
		courseRepo:      courseRepo,
		enrollmentRepo:  enrollmentRepo,
		requestRepo:     requestRepo,
		notificationSvc: notificationSvc,
	}
}

// ListCourses godoc
// @Summary List enrollable courses
// @Description Published and active courses with their enrollment counts.
// @Tags Student
// @Produce json
// @Success 200 {array} dto.CourseSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *StudentController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseRepo.FindAllPublishedWithEnrollmentCount()
	if err != nil {
		log.Error().Err(err).Msg("ListCourses: failed to load catalog")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve courses"})
		return
	}
	summaries := make([]dto.CourseSummaryDTO, len(courses))
	for i, course := range courses {
		copier.Copy(&summaries[i], &course.Course)
		summaries[i].EnrollmentCount = course.EnrollmentCount
	}
	ctx.JSON(http.StatusOK, summaries)
}

// CreateAccessRequest godoc
// @Summary Request access to a course
// @Tags Student
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param body body dto.CreateAccessRequestDTO false "Optional reason"
// @Success 201 {object} dto.CreateRequestResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID or body"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or duplicate request"
// @Router /courses/{course_id}/requests [post]
func (c *StudentController) CreateAccessRequest(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course ID format"})
		return
	}
	var req dto.CreateAccessRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	out, err := c.dataManager.CreateRequest(datamanager.CreateRequestParams{
		StudentID: middleware.PrincipalID(ctx),
		CourseID:  uint(courseID),
		Reason:    req.Reason,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CreateRequestResultDTO{RequestID: out.RequestID})
}

// ListMyEnrollments godoc
// @Summary List the caller's enrollments
// @Tags Student
// @Produce json
// @Success 200 {array} dto.EnrollmentResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /me/enrollments [get]
func (c *StudentController) ListMyEnrollments(ctx *gin.Context) {
	enrollments, err := c.enrollmentRepo.FindAllByUser(middleware.PrincipalID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListMyEnrollments: repository error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve enrollments"})
		return
	}
	resp := make([]dto.EnrollmentResponseDTO, len(enrollments))
	for i := range enrollments {
		copier.Copy(&resp[i], &enrollments[i])
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListMyRequests godoc
// @Summary List the caller's access requests
// @Tags Student
// @Produce json
// @Success 200 {array} dto.AccessRequestResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /me/requests [get]
func (c *StudentController) ListMyRequests(ctx *gin.Context) {
	requests, err := c.requestRepo.FindAllByStudent(middleware.PrincipalID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListMyRequests: repository error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve requests"})
		return
	}
	resp := make([]dto.AccessRequestResponseDTO, len(requests))
	for i := range requests {
		copier.Copy(&resp[i], &requests[i])
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListMyNotifications godoc
// @Summary List the caller's notifications
// @Tags Student
// @Produce json
// @Success 200 {array} dto.NotificationDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /me/notifications [get]
func (c *StudentController) ListMyNotifications(ctx *gin.Context) {
	notifications, err := c.notificationSvc.ListForUser(middleware.PrincipalID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListMyNotifications: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve notifications"})
		return
	}
	resp := make([]dto.NotificationDTO, len(notifications))
	for i := range notifications {
		copier.Copy(&resp[i], &notifications[i])
	}
	ctx.JSON(http.StatusOK, resp)
}

// MarkNotificationRead godoc
// @Summary Mark one of the caller's notifications as read
// @Tags Student
// @Produce json
// @Param notification_id path int true "Notification ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Router /me/notifications/{notification_id}/read [post]
func (c *StudentController) MarkNotificationRead(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("notification_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid notification ID format"})
		return
	}
	if err := c.notificationSvc.MarkRead(uint(id), middleware.PrincipalID(ctx)); err != nil {
		log.Error().Err(err).Msg("MarkNotificationRead: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update notification"})
		return
	}
	ctx.Status(http.StatusNoContent)
}
