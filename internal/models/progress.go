package models

import (
	"time"

	"github.com/google/uuid"
)

// Per-user question progress states.
const (
	ProgressStatusSolved       = "solved"
	ProgressStatusAttempted    = "attempted"
	ProgressStatusNotAttempted = "not_attempted"
)

// UserQuestionProgress tracks a user's standing on a single question. Rows are
// created lazily on the first submission attempt. A solved row is never
// demoted by later failing submissions.
type UserQuestionProgress struct {
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	QuestionID   uint       `gorm:"primaryKey" json:"question_id"`
	Status       string     `gorm:"size:16;not null;default:not_attempted" json:"status"`
	LastSolvedAt *time.Time `json:"last_solved_at"`
}

// TableName keeps the original table naming.
func (UserQuestionProgress) TableName() string {
	return "user_questions"
}
