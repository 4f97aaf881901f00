package event

import "github.com/rs/zerolog/log"

// AuditSink writes every domain event to the structured log.
type AuditSink struct{}

func NewAuditSink() *AuditSink {
	return &AuditSink{}
}

func (s *AuditSink) Handle(evt Event) {
	log.Info().
		Str("event_id", evt.ID.String()).
		Str("event_type", evt.Type).
		Time("occurred_at", evt.OccurredAt).
		Uint("actor_id", evt.ActorID).
		Uint("student_id", evt.StudentID).
		Uint("course_id", evt.CourseID).
		Interface("payload", evt.Payload).
		Msg("domain_event")
}
