package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
	"github.com/sainanduk/problemsolving-go/pkg/judge0"
)

type stubEvaluator struct {
	results  []judge0.EvaluationResult
	err      error
	requests []judge0.EvaluationRequest
}

func (s *stubEvaluator) Evaluate(_ context.Context, req judge0.EvaluationRequest) (judge0.EvaluationResult, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return judge0.EvaluationResult{}, s.err
	}
	index := len(s.requests) - 1
	if index >= len(s.results) {
		return judge0.EvaluationResult{Verdict: judge0.VerdictAccepted}, nil
	}
	return s.results[index], nil
}

func openGradingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.TestCase{},
		&models.Submission{},
		&models.UserQuestionProgress{},
	))
	return db
}

func seedGradingFixtures(t *testing.T, db *gorm.DB, testCases int) (uuid.UUID, uint) {
	t.Helper()

	user := models.User{Username: "grader", Email: "grader@example.com"}
	require.NoError(t, db.Create(&user).Error)

	question := models.Question{Slug: "two-sum", Title: "Two Sum", Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&question).Error)

	for i := 0; i < testCases; i++ {
		testCase := models.TestCase{
			QuestionID: question.ID,
			Input:      fmt.Sprintf("input-%d", i+1),
			Output:     fmt.Sprintf("output-%d", i+1),
		}
		require.NoError(t, db.Create(&testCase).Error)
	}

	return user.ID, question.ID
}

func newGradingService(t *testing.T, db *gorm.DB, judge judge0.Evaluator) GradingService {
	t.Helper()

	validate := validator.New(validator.WithRequiredStructEnabled())
	testcaseCache := NewTestcaseCache(repository.NewTestCaseRepository(db), nil, time.Minute, zerolog.Nop())
	events := NewSubmissionEventPublisher(nil, "submissions.graded", zerolog.Nop())

	return NewGradingService(
		repository.NewSubmissionRepository(db),
		repository.NewProgressRepository(db),
		testcaseCache,
		judge,
		events,
		validate,
		zerolog.Nop(),
		GradingConfig{MaxCodeLength: 1024},
	)
}

func TestGradeAllTestCasesPassing(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 3)

	judge := &stubEvaluator{results: []judge0.EvaluationResult{
		{Verdict: judge0.VerdictAccepted, Time: 0.02, Memory: 1200},
		{Verdict: judge0.VerdictAccepted, Time: 0.15, Memory: 900},
		{Verdict: judge0.VerdictAccepted, Time: 0.05, Memory: 2048},
	}}
	svc := newGradingService(t, db, judge)

	result, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{
		LanguageID: 71,
		Code:       "print(1)",
	})
	require.NoError(t, err)
	require.True(t, result.Passed)
	require.Empty(t, result.Input)
	require.Len(t, judge.requests, 3)
	require.Equal(t, "input-1", judge.requests[0].Stdin)
	require.Equal(t, "output-3", judge.requests[2].ExpectedOutput)

	var stored models.Submission
	require.NoError(t, db.First(&stored, result.Submission.ID).Error)
	require.Equal(t, models.SubmissionStatusAccepted, stored.Status)
	require.InDelta(t, 0.15, stored.ExecutionTime, 0.001)
	require.Equal(t, 2048, stored.MemoryUsed)

	var progress models.UserQuestionProgress
	require.NoError(t, db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&progress).Error)
	require.Equal(t, models.ProgressStatusSolved, progress.Status)
	require.NotNil(t, progress.LastSolvedAt)
}

func TestGradeStopsAtFirstFailure(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 3)

	judge := &stubEvaluator{results: []judge0.EvaluationResult{
		{Verdict: judge0.VerdictAccepted, Time: 0.01, Memory: 500},
		{Verdict: judge0.VerdictWrongAnswer, Stdout: "42", Time: 0.02, Memory: 600},
	}}
	svc := newGradingService(t, db, judge)

	result, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{
		LanguageID: 71,
		Code:       "print(42)",
	})
	require.NoError(t, err)
	require.False(t, result.Passed)
	require.Equal(t, "input-2", result.Input)
	require.Equal(t, "output-2", result.Output)
	require.Equal(t, "42", result.Stdout)
	require.Len(t, judge.requests, 2)

	var stored models.Submission
	require.NoError(t, db.First(&stored, result.Submission.ID).Error)
	require.Equal(t, models.SubmissionStatusWrongAnswer, stored.Status)

	var progress models.UserQuestionProgress
	require.NoError(t, db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&progress).Error)
	require.Equal(t, models.ProgressStatusAttempted, progress.Status)
}

func TestGradeVerdictClassification(t *testing.T) {
	cases := []struct {
		verdict string
		status  string
	}{
		{judge0.VerdictCompilationError, models.SubmissionStatusCompilationError},
		{judge0.VerdictTimeLimitExceeded, models.SubmissionStatusTimeLimitExceeded},
		{"Runtime Error (NZEC)", models.SubmissionStatusRuntimeError},
		{"Runtime Error (SIGSEGV)", models.SubmissionStatusRuntimeError},
		{judge0.VerdictWrongAnswer, models.SubmissionStatusWrongAnswer},
		{"Exec Format Error", models.SubmissionStatusWrongAnswer},
	}

	for _, tc := range cases {
		require.Equal(t, tc.status, classifyVerdict(tc.verdict), tc.verdict)
	}
}

func TestGradeWithoutTestCases(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 0)

	judge := &stubEvaluator{}
	svc := newGradingService(t, db, judge)

	_, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{
		LanguageID: 71,
		Code:       "print(1)",
	})
	require.ErrorIs(t, err, ErrNoTestcases)
	require.Empty(t, judge.requests)

	// The submission record exists but was never graded.
	var stored models.Submission
	require.NoError(t, db.Where("user_id = ?", userID).First(&stored).Error)
	require.Equal(t, models.SubmissionStatusPending, stored.Status)

	// No progress row is created when grading never started.
	var count int64
	require.NoError(t, db.Model(&models.UserQuestionProgress{}).Where("user_id = ?", userID).Count(&count).Error)
	require.Zero(t, count)
}

func TestGradeJudgeFailureKeepsSubmissionPending(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 2)

	judge := &stubEvaluator{err: errors.New("judge unavailable")}
	svc := newGradingService(t, db, judge)

	_, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{
		LanguageID: 71,
		Code:       "print(1)",
	})
	require.Error(t, err)

	var stored models.Submission
	require.NoError(t, db.Where("user_id = ?", userID).First(&stored).Error)
	require.Equal(t, models.SubmissionStatusPending, stored.Status)
}

func TestGradeRejectsOversizedCode(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 1)

	svc := newGradingService(t, db, &stubEvaluator{})

	_, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{
		LanguageID: 71,
		Code:       strings.Repeat("a", 2048),
	})
	require.ErrorIs(t, err, ErrCodeTooLong)

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGradeFailureDoesNotDemoteSolvedProgress(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 1)

	solvedAt := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Create(&models.UserQuestionProgress{
		UserID:       userID,
		QuestionID:   questionID,
		Status:       models.ProgressStatusSolved,
		LastSolvedAt: &solvedAt,
	}).Error)

	judge := &stubEvaluator{results: []judge0.EvaluationResult{
		{Verdict: judge0.VerdictWrongAnswer, Stdout: "nope"},
	}}
	svc := newGradingService(t, db, judge)

	result, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{
		LanguageID: 71,
		Code:       "print(0)",
	})
	require.NoError(t, err)
	require.False(t, result.Passed)

	var progress models.UserQuestionProgress
	require.NoError(t, db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&progress).Error)
	require.Equal(t, models.ProgressStatusSolved, progress.Status)
	require.NotNil(t, progress.LastSolvedAt)
}

func TestGradeValidatesPayload(t *testing.T) {
	db := openGradingTestDB(t)
	userID, questionID := seedGradingFixtures(t, db, 1)

	svc := newGradingService(t, db, &stubEvaluator{})

	var validationErrors validator.ValidationErrors
	_, err := svc.Grade(context.Background(), userID, questionID, dto.SubmissionRequest{LanguageID: 0, Code: ""})
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErrors)
}
