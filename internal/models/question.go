package models

import "time"

// Question difficulty levels.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

// Question is a catalog entry for a programming problem.
type Question struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Slug           string        `gorm:"size:127;uniqueIndex;not null" json:"slug"`
	Title          string        `gorm:"size:255;not null" json:"title"`
	Difficulty     string        `gorm:"size:16;not null;index" json:"difficulty"`
	PremiumOnly    bool          `gorm:"default:false" json:"premium_only"`
	IsActive       bool          `gorm:"default:true" json:"is_active"`
	AcceptanceRate *float64      `json:"acceptance_rate"`
	LikesCount     int64         `gorm:"default:0" json:"likes_count"`
	DislikesCount  int64         `gorm:"default:0" json:"dislikes_count"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Body           *QuestionBody `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"body,omitempty"`
	TestCases      []TestCase    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"test_cases,omitempty"`
	Editorial      *Editorial    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"editorial,omitempty"`
	Tags           []Tag         `gorm:"many2many:question_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Companies      []Company     `gorm:"many2many:question_companies;constraint:OnDelete:CASCADE" json:"companies,omitempty"`
}

// QuestionBody carries the markdown content associated with a question.
type QuestionBody struct {
	QuestionID    uint      `gorm:"primaryKey" json:"question_id"`
	DescriptionMD string    `gorm:"type:text" json:"description_md"`
	ConstraintsMD string    `gorm:"type:text" json:"constraints_md"`
	HintsMD       string    `gorm:"type:text" json:"hints_md"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
