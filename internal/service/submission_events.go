package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// SubmissionEvent is published after a submission reaches a terminal status.
type SubmissionEvent struct {
	SubmissionID uint      `json:"submission_id"`
	UserID       uuid.UUID `json:"user_id"`
	QuestionID   uint      `json:"question_id"`
	Status       string    `json:"status"`
	GradedAt     time.Time `json:"graded_at"`
}

// SubmissionEventPublisher emits grading events over NATS. Publishing is best
// effort: a missing connection or publish failure never fails the request.
type SubmissionEventPublisher struct {
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewSubmissionEventPublisher builds a publisher; conn may be nil.
func NewSubmissionEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) *SubmissionEventPublisher {
	return &SubmissionEventPublisher{
		nats:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "submission_events").Logger(),
	}
}

// Publish sends the event when a connection is configured.
func (p *SubmissionEventPublisher) Publish(event SubmissionEvent) {
	if p == nil || p.nats == nil || p.subject == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode submission event")
		return
	}

	if err := p.nats.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Uint("submission_id", event.SubmissionID).Msg("failed to publish submission event")
	}
}
