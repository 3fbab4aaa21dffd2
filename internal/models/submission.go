package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission statuses. A submission is created pending and moves to exactly
// one terminal status when grading completes; a crash mid-grading leaves it
// pending with no automatic reconciliation.
const (
	SubmissionStatusPending           = "pending"
	SubmissionStatusAccepted          = "accepted"
	SubmissionStatusWrongAnswer       = "wrong_answer"
	SubmissionStatusTimeLimitExceeded = "time_limit_exceeded"
	SubmissionStatusRuntimeError      = "runtime_error"
	SubmissionStatusCompilationError  = "compilation_error"
)

// Submission records one grading attempt of user code against a question.
type Submission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestionID    uint      `gorm:"not null;index" json:"question_id"`
	Language      string    `gorm:"size:50;not null" json:"language"`
	Code          string    `gorm:"type:text;not null" json:"code"`
	Status        string    `gorm:"size:32;not null;index;default:pending" json:"status"`
	ExecutionTime float64   `json:"execution_time"`
	MemoryUsed    int       `json:"memory_used"`
	SubmittedAt   time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsTerminal reports whether the submission has reached a final status.
func (s Submission) IsTerminal() bool {
	return s.Status != SubmissionStatusPending
}
