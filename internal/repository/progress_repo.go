package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// ProgressRepository manages per-(user, question) progress rows.
type ProgressRepository interface {
	Get(ctx context.Context, userID uuid.UUID, questionID uint) (models.UserQuestionProgress, error)
	Create(ctx context.Context, progress *models.UserQuestionProgress) error
	MarkSolved(ctx context.Context, userID uuid.UUID, questionID uint, solvedAt time.Time) error
	MarkAttempted(ctx context.Context, userID uuid.UUID, questionID uint) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserQuestionProgress, error)
}

// NewProgressRepository constructs a progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

type progressRepository struct {
	db *gorm.DB
}

func (r *progressRepository) Get(ctx context.Context, userID uuid.UUID, questionID uint) (models.UserQuestionProgress, error) {
	var progress models.UserQuestionProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&progress).Error
	if err != nil {
		return models.UserQuestionProgress{}, err
	}
	return progress, nil
}

func (r *progressRepository) Create(ctx context.Context, progress *models.UserQuestionProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *progressRepository) MarkSolved(ctx context.Context, userID uuid.UUID, questionID uint, solvedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.UserQuestionProgress{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Updates(map[string]interface{}{
			"status":         models.ProgressStatusSolved,
			"last_solved_at": solvedAt,
		}).Error
}

// MarkAttempted demotes progress to attempted unless the question is already
// solved. The guard lives in the WHERE clause so a concurrent submission that
// solved the question in the meantime cannot be regressed by a stale read.
func (r *progressRepository) MarkAttempted(ctx context.Context, userID uuid.UUID, questionID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.UserQuestionProgress{}).
		Where("user_id = ? AND question_id = ? AND status <> ?", userID, questionID, models.ProgressStatusSolved).
		Update("status", models.ProgressStatusAttempted).Error
}

func (r *progressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserQuestionProgress, error) {
	var rows []models.UserQuestionProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
