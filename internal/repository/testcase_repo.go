package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// TestCaseRepository exposes read access to grading test cases.
type TestCaseRepository interface {
	ListByQuestion(ctx context.Context, questionID uint) ([]models.TestCase, error)
	CreateBatch(ctx context.Context, testCases []models.TestCase) error
}

// NewTestCaseRepository constructs a test case repository.
func NewTestCaseRepository(db *gorm.DB) TestCaseRepository {
	return &testCaseRepository{db: db}
}

type testCaseRepository struct {
	db *gorm.DB
}

// ListByQuestion returns every test case of the question ordered by primary
// key, so grading always evaluates cases in insertion order.
func (r *testCaseRepository) ListByQuestion(ctx context.Context, questionID uint) ([]models.TestCase, error) {
	var testCases []models.TestCase
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id ASC").
		Find(&testCases).Error
	if err != nil {
		return nil, err
	}
	return testCases, nil
}

func (r *testCaseRepository) CreateBatch(ctx context.Context, testCases []models.TestCase) error {
	if len(testCases) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&testCases).Error
}
