package dto

import (
	"time"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// QuestionRequest is the payload for creating or updating a question and its body.
type QuestionRequest struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title" validate:"required,min=1,max=255"`
	Difficulty     string   `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	PremiumOnly    bool     `json:"premium_only"`
	IsActive       *bool    `json:"is_active"`
	AcceptanceRate *float64 `json:"acceptance_rate" validate:"omitempty,gte=0,lte=100"`
	DescriptionMD  string   `json:"description_md"`
	ConstraintsMD  string   `json:"constraints_md"`
	HintsMD        string   `json:"hints_md"`
}

// TestCaseInput is one test case in a bulk add request.
type TestCaseInput struct {
	Input    string `json:"input" validate:"required"`
	Output   string `json:"output" validate:"required"`
	IsPublic bool   `json:"is_public"`
}

// AddTestCasesRequest bulk-adds test cases to a question.
type AddTestCasesRequest struct {
	QuestionID uint            `json:"question_id" validate:"required,gt=0"`
	TestCases  []TestCaseInput `json:"testcases" validate:"required,min=1,dive"`
}

// EditorialRequest creates or replaces a question's editorial.
type EditorialRequest struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,min=1"`
	VideoLink  string `json:"video_link" validate:"omitempty,url"`
}

// AssignTagRequest links a tag to a question.
type AssignTagRequest struct {
	QuestionID uint `json:"question_id" validate:"required,gt=0"`
	TagID      uint `json:"tag_id" validate:"required,gt=0"`
}

// AssignCompanyRequest links a company to a question.
type AssignCompanyRequest struct {
	QuestionID uint `json:"question_id" validate:"required,gt=0"`
	CompanyID  uint `json:"company_id" validate:"required,gt=0"`
}

// QuestionResponse is the catalog list representation of a question.
type QuestionResponse struct {
	ID             uint      `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Difficulty     string    `json:"difficulty"`
	PremiumOnly    bool      `json:"premium_only"`
	IsActive       bool      `json:"is_active"`
	AcceptanceRate *float64  `json:"acceptance_rate"`
	LikesCount     int64     `json:"likes_count"`
	DislikesCount  int64     `json:"dislikes_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionBodyResponse is the markdown body of a question.
type QuestionBodyResponse struct {
	DescriptionMD string `json:"description_md"`
	ConstraintsMD string `json:"constraints_md"`
	HintsMD       string `json:"hints_md"`
}

// PublicTestCaseResponse is a sample test case shown in the problem statement.
type PublicTestCaseResponse struct {
	ID     uint   `json:"id"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// EditorialResponse is the editorial representation.
type EditorialResponse struct {
	Content   string `json:"content"`
	VideoLink string `json:"video_link"`
}

// QuestionDetailResponse is the full question view with related content.
type QuestionDetailResponse struct {
	QuestionResponse
	Body      *QuestionBodyResponse    `json:"body,omitempty"`
	TestCases []PublicTestCaseResponse `json:"test_cases"`
	Editorial *EditorialResponse       `json:"editorial,omitempty"`
	Tags      []TagResponse            `json:"tags"`
	Companies []CompanyResponse        `json:"companies"`
}

// NewQuestionResponse builds a list DTO from a model.
func NewQuestionResponse(question models.Question) QuestionResponse {
	return QuestionResponse{
		ID:             question.ID,
		Slug:           question.Slug,
		Title:          question.Title,
		Difficulty:     question.Difficulty,
		PremiumOnly:    question.PremiumOnly,
		IsActive:       question.IsActive,
		AcceptanceRate: question.AcceptanceRate,
		LikesCount:     question.LikesCount,
		DislikesCount:  question.DislikesCount,
		CreatedAt:      question.CreatedAt,
	}
}

// NewQuestionResponses maps a slice of questions.
func NewQuestionResponses(questions []models.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}
	return responses
}

// NewQuestionDetailResponse builds the full question view.
func NewQuestionDetailResponse(question models.Question) QuestionDetailResponse {
	detail := QuestionDetailResponse{
		QuestionResponse: NewQuestionResponse(question),
		TestCases:        make([]PublicTestCaseResponse, 0, len(question.TestCases)),
		Tags:             NewTagResponses(question.Tags),
		Companies:        NewCompanyResponses(question.Companies),
	}

	if question.Body != nil {
		detail.Body = &QuestionBodyResponse{
			DescriptionMD: question.Body.DescriptionMD,
			ConstraintsMD: question.Body.ConstraintsMD,
			HintsMD:       question.Body.HintsMD,
		}
	}

	for _, testCase := range question.TestCases {
		detail.TestCases = append(detail.TestCases, PublicTestCaseResponse{
			ID:     testCase.ID,
			Input:  testCase.Input,
			Output: testCase.Output,
		})
	}

	if question.Editorial != nil {
		detail.Editorial = &EditorialResponse{
			Content:   question.Editorial.Content,
			VideoLink: question.Editorial.VideoLink,
		}
	}

	return detail
}
