package models

import "time"

// Editorial is the official write-up for a question.
type Editorial struct {
	QuestionID uint      `gorm:"primaryKey" json:"question_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	VideoLink  string    `gorm:"size:512" json:"video_link"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
