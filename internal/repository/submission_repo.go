package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// DailySubmissionCount is one bucket of the per-day activity aggregation.
type DailySubmissionCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// SubmissionRepository exposes persistence helpers for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	UpdateResult(ctx context.Context, id uint, status string, executionTime float64, memoryUsed int) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Submission, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]models.Submission, error)
	DailyCounts(ctx context.Context, userID uuid.UUID) ([]DailySubmissionCount, error)
}

// NewSubmissionRepository constructs a submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

type submissionRepository struct {
	db *gorm.DB
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// UpdateResult performs the single terminal transition of a submission.
func (r *submissionRepository) UpdateResult(ctx context.Context, id uint, status string, executionTime float64, memoryUsed int) error {
	return r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"execution_time": executionTime,
			"memory_used":    memoryUsed,
		}).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) ListByQuestion(ctx context.Context, questionID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) DailyCounts(ctx context.Context, userID uuid.UUID) ([]DailySubmissionCount, error) {
	var counts []DailySubmissionCount
	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Select("DATE(submitted_at) AS date, COUNT(id) AS count").
		Where("user_id = ?", userID).
		Group("DATE(submitted_at)").
		Order("date ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
