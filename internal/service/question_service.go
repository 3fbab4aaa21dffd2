package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

// ErrQuestionNotFound indicates the question cannot be located.
var ErrQuestionNotFound = errors.New("question not found")

// ErrTagNotFound indicates the tag cannot be located.
var ErrTagNotFound = errors.New("tag not found")

// ErrCompanyNotFound indicates the company cannot be located.
var ErrCompanyNotFound = errors.New("company not found")

// QuestionService exposes catalog management operations.
type QuestionService interface {
	Create(ctx context.Context, payload dto.QuestionRequest) (dto.QuestionResponse, error)
	Update(ctx context.Context, id uint, payload dto.QuestionRequest) error
	Get(ctx context.Context, id uint) (dto.QuestionDetailResponse, error)
	List(ctx context.Context) ([]dto.QuestionResponse, error)
	Delete(ctx context.Context, id uint) error
	AddTestCases(ctx context.Context, payload dto.AddTestCasesRequest) (int, error)
	SaveEditorial(ctx context.Context, payload dto.EditorialRequest) error
	AssignTag(ctx context.Context, payload dto.AssignTagRequest) error
	AssignCompany(ctx context.Context, payload dto.AssignCompanyRequest) error
}

type questionService struct {
	questions repository.QuestionRepository
	testCases repository.TestCaseRepository
	tags      repository.TagRepository
	companies repository.CompanyRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewQuestionService constructs the catalog service. User-provided markdown
// and editorial content is sanitized before it is stored.
func NewQuestionService(questions repository.QuestionRepository, testCases repository.TestCaseRepository, tags repository.TagRepository, companies repository.CompanyRepository, validate *validator.Validate, logger zerolog.Logger) QuestionService {
	return &questionService{
		questions: questions,
		testCases: testCases,
		tags:      tags,
		companies: companies,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

func (s *questionService) Create(ctx context.Context, payload dto.QuestionRequest) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	question := s.buildQuestion(payload)
	body := s.buildBody(payload)

	if err := s.questions.Create(ctx, &question, body); err != nil {
		return dto.QuestionResponse{}, err
	}

	s.logger.Info().Uint("question_id", question.ID).Str("slug", question.Slug).Msg("question created")
	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) Update(ctx context.Context, id uint, payload dto.QuestionRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	existing, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	question := s.buildQuestion(payload)
	question.ID = existing.ID
	question.CreatedAt = existing.CreatedAt
	body := s.buildBody(payload)

	return s.questions.Update(ctx, &question, body)
}

func (s *questionService) Get(ctx context.Context, id uint) (dto.QuestionDetailResponse, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuestionDetailResponse{}, ErrQuestionNotFound
		}
		return dto.QuestionDetailResponse{}, err
	}
	return dto.NewQuestionDetailResponse(question), nil
}

func (s *questionService) List(ctx context.Context) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewQuestionResponses(questions), nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *questionService) AddTestCases(ctx context.Context, payload dto.AddTestCasesRequest) (int, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	if _, err := s.questions.GetByID(ctx, payload.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuestionNotFound
		}
		return 0, err
	}

	testCases := make([]models.TestCase, 0, len(payload.TestCases))
	for _, input := range payload.TestCases {
		testCases = append(testCases, models.TestCase{
			QuestionID: payload.QuestionID,
			Input:      input.Input,
			Output:     input.Output,
			IsPublic:   input.IsPublic,
		})
	}

	if err := s.testCases.CreateBatch(ctx, testCases); err != nil {
		return 0, err
	}

	return len(testCases), nil
}

func (s *questionService) SaveEditorial(ctx context.Context, payload dto.EditorialRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if _, err := s.questions.GetByID(ctx, payload.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	return s.questions.SaveEditorial(ctx, &models.Editorial{
		QuestionID: payload.QuestionID,
		Content:    s.sanitizer.Sanitize(payload.Content),
		VideoLink:  payload.VideoLink,
	})
}

func (s *questionService) AssignTag(ctx context.Context, payload dto.AssignTagRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if _, err := s.questions.GetByID(ctx, payload.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	if _, err := s.tags.GetByID(ctx, payload.TagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	return s.questions.AssignTag(ctx, payload.QuestionID, payload.TagID)
}

func (s *questionService) AssignCompany(ctx context.Context, payload dto.AssignCompanyRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if _, err := s.questions.GetByID(ctx, payload.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	if _, err := s.companies.GetByID(ctx, payload.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}

	return s.questions.AssignCompany(ctx, payload.QuestionID, payload.CompanyID)
}

func (s *questionService) buildQuestion(payload dto.QuestionRequest) models.Question {
	questionSlug := strings.TrimSpace(payload.Slug)
	if questionSlug == "" {
		questionSlug = slug.Make(payload.Title)
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	return models.Question{
		Slug:           questionSlug,
		Title:          payload.Title,
		Difficulty:     payload.Difficulty,
		PremiumOnly:    payload.PremiumOnly,
		IsActive:       isActive,
		AcceptanceRate: payload.AcceptanceRate,
	}
}

func (s *questionService) buildBody(payload dto.QuestionRequest) *models.QuestionBody {
	if payload.DescriptionMD == "" && payload.ConstraintsMD == "" && payload.HintsMD == "" {
		return nil
	}

	return &models.QuestionBody{
		DescriptionMD: s.sanitizer.Sanitize(payload.DescriptionMD),
		ConstraintsMD: s.sanitizer.Sanitize(payload.ConstraintsMD),
		HintsMD:       s.sanitizer.Sanitize(payload.HintsMD),
	}
}
