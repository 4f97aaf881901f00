package service

import (
	"fmt"

	"github.com/mvhien/learnhub/internal/event"
	"github.com/mvhien/learnhub/internal/model"
	"github.com/mvhien/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// NotificationService turns committed domain events into per-user
// notification rows. It is a best-effort collaborator: a failed write is
// logged and dropped, never surfaced to the operation that emitted the
// event.
type NotificationService interface {
	event.Sink
	ListForUser(userID uint) ([]model.Notification, error)
	MarkRead(id, userID uint) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Handle(evt event.Event) {
	message := s.messageFor(evt)
	if message == "" {
		return
	}
	notification := &model.Notification{
		UserID:  evt.StudentID,
		Type:    evt.Type,
		Message: message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		log.Warn().Err(err).Str("event_type", evt.Type).Uint("user_id", evt.StudentID).
			Msg("Failed to write notification for event")
	}
}

func (s *notificationService) messageFor(evt event.Event) string {
	switch evt.Type {
	case event.TypeEnrollmentCreated:
		return fmt.Sprintf("You have been enrolled in course %d.", evt.CourseID)
	case event.TypeEnrollmentRemoved:
		return fmt.Sprintf("Your enrollment in course %d has ended.", evt.CourseID)
	case event.TypeRequestApproved:
		return fmt.Sprintf("Your access request for course %d was approved.", evt.CourseID)
	case event.TypeRequestRejected:
		return fmt.Sprintf("Your access request for course %d was rejected.", evt.CourseID)
	default:
		// request.created and progress.synced do not notify the student.
		return ""
	}
}

func (s *notificationService) ListForUser(userID uint) ([]model.Notification, error) {
	return s.notificationRepo.FindAllByUser(userID)
}

func (s *notificationService) MarkRead(id, userID uint) error {
	return s.notificationRepo.MarkRead(id, userID)
}
