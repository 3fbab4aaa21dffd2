package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
	"github.com/sainanduk/problemsolving-go/pkg/judge0"
)

// ErrCodeTooLong indicates the submitted source exceeds the configured limit.
var ErrCodeTooLong = errors.New("code exceeds maximum length")

// GradingResult is the outcome of one grading attempt. When Passed is false,
// Input/Output describe the first failing test case and Stdout is what the
// program printed for it.
type GradingResult struct {
	Submission models.Submission
	Passed     bool
	Input      string
	Output     string
	Stdout     string
}

// GradingService turns one code submission into a graded result.
type GradingService interface {
	Grade(ctx context.Context, userID uuid.UUID, questionID uint, payload dto.SubmissionRequest) (GradingResult, error)
}

// GradingConfig describes grading limits surfaced to configuration.
type GradingConfig struct {
	MaxCodeLength int
}

type gradingService struct {
	submissions repository.SubmissionRepository
	progress    repository.ProgressRepository
	testCases   *TestcaseCache
	judge       judge0.Evaluator
	events      *SubmissionEventPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
	config      GradingConfig
	now         func() time.Time
}

// NewGradingService constructs the grading workflow.
func NewGradingService(submissions repository.SubmissionRepository, progress repository.ProgressRepository, testCases *TestcaseCache, judge judge0.Evaluator, events *SubmissionEventPublisher, validate *validator.Validate, logger zerolog.Logger, cfg GradingConfig) GradingService {
	if cfg.MaxCodeLength <= 0 {
		cfg.MaxCodeLength = 65536
	}

	return &gradingService{
		submissions: submissions,
		progress:    progress,
		testCases:   testCases,
		judge:       judge,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		config:      cfg,
		now:         time.Now,
	}
}

// Grade runs the submission against every test case of the question in order,
// stopping at the first failure. The pending submission row is written before
// any judge call, so a crash mid-grading leaves an inspectable pending record.
func (s *gradingService) Grade(ctx context.Context, userID uuid.UUID, questionID uint, payload dto.SubmissionRequest) (GradingResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return GradingResult{}, err
	}
	if len(payload.Code) > s.config.MaxCodeLength {
		return GradingResult{}, ErrCodeTooLong
	}

	submission := models.Submission{
		UserID:      userID,
		QuestionID:  questionID,
		Language:    strconv.Itoa(payload.LanguageID),
		Code:        payload.Code,
		Status:      models.SubmissionStatusPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.submissions.Create(ctx, &submission); err != nil {
		return GradingResult{}, fmt.Errorf("create submission: %w", err)
	}

	testCases, err := s.testCases.Get(ctx, questionID)
	if err != nil {
		// Submission stays pending; no progress row is touched.
		return GradingResult{}, err
	}

	if err := s.ensureProgress(ctx, userID, questionID); err != nil {
		return GradingResult{}, fmt.Errorf("ensure progress: %w", err)
	}

	var maxTime float64
	var maxMemory int

	for _, testCase := range testCases {
		result, err := s.judge.Evaluate(ctx, judge0.EvaluationRequest{
			SourceCode:     payload.Code,
			LanguageID:     payload.LanguageID,
			Stdin:          testCase.Input,
			ExpectedOutput: testCase.Output,
		})
		if err != nil {
			// No retry. The submission keeps whatever status it had.
			return GradingResult{}, err
		}

		if result.Time > maxTime {
			maxTime = result.Time
		}
		if result.Memory > maxMemory {
			maxMemory = result.Memory
		}

		if result.Verdict != judge0.VerdictAccepted {
			status := classifyVerdict(result.Verdict)
			if err := s.submissions.UpdateResult(ctx, submission.ID, status, maxTime, maxMemory); err != nil {
				return GradingResult{}, fmt.Errorf("update submission: %w", err)
			}
			if err := s.progress.MarkAttempted(ctx, userID, questionID); err != nil {
				return GradingResult{}, fmt.Errorf("update progress: %w", err)
			}

			submission.Status = status
			submission.ExecutionTime = maxTime
			submission.MemoryUsed = maxMemory

			s.publishResult(submission)
			s.logger.Info().
				Uint("submission_id", submission.ID).
				Str("status", status).
				Str("verdict", result.Verdict).
				Msg("submission rejected")

			return GradingResult{
				Submission: submission,
				Passed:     false,
				Input:      testCase.Input,
				Output:     testCase.Output,
				Stdout:     result.Stdout,
			}, nil
		}
	}

	if err := s.submissions.UpdateResult(ctx, submission.ID, models.SubmissionStatusAccepted, maxTime, maxMemory); err != nil {
		return GradingResult{}, fmt.Errorf("update submission: %w", err)
	}
	if err := s.progress.MarkSolved(ctx, userID, questionID, s.now().UTC()); err != nil {
		return GradingResult{}, fmt.Errorf("update progress: %w", err)
	}

	submission.Status = models.SubmissionStatusAccepted
	submission.ExecutionTime = maxTime
	submission.MemoryUsed = maxMemory

	s.publishResult(submission)
	s.logger.Info().
		Uint("submission_id", submission.ID).
		Int("testcases", len(testCases)).
		Msg("submission accepted")

	return GradingResult{Submission: submission, Passed: true}, nil
}

// ensureProgress creates the lazily-initialised progress row on the first
// attempt for this (user, question) pair.
func (s *gradingService) ensureProgress(ctx context.Context, userID uuid.UUID, questionID uint) error {
	_, err := s.progress.Get(ctx, userID, questionID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.progress.Create(ctx, &models.UserQuestionProgress{
		UserID:     userID,
		QuestionID: questionID,
		Status:     models.ProgressStatusAttempted,
	})
}

func (s *gradingService) publishResult(submission models.Submission) {
	s.events.Publish(SubmissionEvent{
		SubmissionID: submission.ID,
		UserID:       submission.UserID,
		QuestionID:   submission.QuestionID,
		Status:       submission.Status,
		GradedAt:     s.now().UTC(),
	})
}

// classifyVerdict maps a judge verdict description to a submission status.
// Judge0 suffixes runtime errors with the signal ("Runtime Error (NZEC)"),
// hence the prefix match. Anything unrecognised counts as a wrong answer.
func classifyVerdict(verdict string) string {
	switch {
	case verdict == judge0.VerdictCompilationError:
		return models.SubmissionStatusCompilationError
	case verdict == judge0.VerdictTimeLimitExceeded:
		return models.SubmissionStatusTimeLimitExceeded
	case strings.HasPrefix(verdict, judge0.VerdictRuntimeError):
		return models.SubmissionStatusRuntimeError
	default:
		return models.SubmissionStatusWrongAnswer
	}
}
