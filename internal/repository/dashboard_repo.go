package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// DifficultyCount is the number of solved questions per difficulty level.
type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int64  `json:"count"`
}

// NamedSolvedCount is the per-tag or per-company solved aggregation.
type NamedSolvedCount struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Solved int64  `json:"solved"`
}

// DashboardRepository runs the aggregation queries behind the user dashboard.
type DashboardRepository interface {
	StatusCounts(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
	SolvedByDifficulty(ctx context.Context, userID uuid.UUID) ([]DifficultyCount, error)
	SolvedByTag(ctx context.Context, userID uuid.UUID) ([]NamedSolvedCount, error)
	SolvedByCompany(ctx context.Context, userID uuid.UUID) ([]NamedSolvedCount, error)
}

// NewDashboardRepository constructs a dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

type dashboardRepository struct {
	db *gorm.DB
}

type statusCountRow struct {
	Status string
	Count  int64
}

func (r *dashboardRepository) StatusCounts(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	var rows []statusCountRow
	err := r.db.WithContext(ctx).
		Model(&models.UserQuestionProgress{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) SolvedByDifficulty(ctx context.Context, userID uuid.UUID) ([]DifficultyCount, error) {
	var rows []DifficultyCount
	err := r.db.WithContext(ctx).
		Table("user_questions").
		Select("questions.difficulty AS difficulty, COUNT(*) AS count").
		Joins("JOIN questions ON questions.id = user_questions.question_id").
		Where("user_questions.user_id = ? AND user_questions.status = ?", userID, models.ProgressStatusSolved).
		Group("questions.difficulty").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) SolvedByTag(ctx context.Context, userID uuid.UUID) ([]NamedSolvedCount, error) {
	var rows []NamedSolvedCount
	err := r.db.WithContext(ctx).
		Table("question_tags").
		Select("tags.id AS id, tags.name AS name, COUNT(*) AS solved").
		Joins("JOIN tags ON tags.id = question_tags.tag_id").
		Joins("JOIN user_questions ON user_questions.question_id = question_tags.question_id").
		Where("user_questions.user_id = ? AND user_questions.status = ?", userID, models.ProgressStatusSolved).
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) SolvedByCompany(ctx context.Context, userID uuid.UUID) ([]NamedSolvedCount, error) {
	var rows []NamedSolvedCount
	err := r.db.WithContext(ctx).
		Table("question_companies").
		Select("companies.id AS id, companies.name AS name, COUNT(*) AS solved").
		Joins("JOIN companies ON companies.id = question_companies.company_id").
		Joins("JOIN user_questions ON user_questions.question_id = question_companies.question_id").
		Where("user_questions.user_id = ? AND user_questions.status = ?", userID, models.ProgressStatusSolved).
		Group("companies.id, companies.name").
		Order("companies.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
