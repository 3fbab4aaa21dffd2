package models

import "time"

// TestCase is one input/expected-output pair used to grade submissions
// against its question. Public cases are shown in problem statements.
type TestCase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Input      string    `gorm:"type:text;not null" json:"input"`
	Output     string    `gorm:"type:text;not null" json:"output"`
	IsPublic   bool      `gorm:"default:false" json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
