package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// SubmissionRequest is the payload accepted by the grading endpoint.
type SubmissionRequest struct {
	LanguageID int    `json:"language_id" validate:"required,gt=0"`
	Code       string `json:"code" validate:"required,min=1"`
}

// SubmissionResponse represents a submission to API consumers.
type SubmissionResponse struct {
	ID            uint      `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	QuestionID    uint      `json:"question_id"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	ExecutionTime float64   `json:"execution_time"`
	MemoryUsed    int       `json:"memory_used"`
	SubmittedAt   time.Time `json:"submitted_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewSubmissionResponse builds a response DTO from a model. Code is not
// echoed back on grading responses.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:            submission.ID,
		UserID:        submission.UserID,
		QuestionID:    submission.QuestionID,
		Language:      submission.Language,
		Status:        submission.Status,
		ExecutionTime: submission.ExecutionTime,
		MemoryUsed:    submission.MemoryUsed,
		SubmittedAt:   submission.SubmittedAt,
		CreatedAt:     submission.CreatedAt,
	}
}

// NewSubmissionResponses maps a slice of submissions.
func NewSubmissionResponses(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}

// GradingResultResponse is returned by the grading endpoint. On the first
// failed test case it carries that case's input, expected output and the
// program's stdout for diagnostics; on acceptance only the submission.
type GradingResultResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Input      string             `json:"input,omitempty"`
	Output     string             `json:"output,omitempty"`
	Stdout     string             `json:"stdout,omitempty"`
}
