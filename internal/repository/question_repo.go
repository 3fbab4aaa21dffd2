package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// QuestionRepository exposes persistence helpers for the question catalog.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question, body *models.QuestionBody) error
	Update(ctx context.Context, question *models.Question, body *models.QuestionBody) error
	GetByID(ctx context.Context, id uint) (models.Question, error)
	List(ctx context.Context) ([]models.Question, error)
	Delete(ctx context.Context, id uint) error
	SaveEditorial(ctx context.Context, editorial *models.Editorial) error
	AssignTag(ctx context.Context, questionID, tagID uint) error
	AssignCompany(ctx context.Context, questionID, companyID uint) error
}

// NewQuestionRepository constructs a question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

type questionRepository struct {
	db *gorm.DB
}

// Create inserts the question and its body in one transaction.
func (r *questionRepository) Create(ctx context.Context, question *models.Question, body *models.QuestionBody) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		if body != nil {
			body.QuestionID = question.ID
			if err := tx.Create(body).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question, body *models.QuestionBody) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if body != nil {
			body.QuestionID = question.ID
			if err := tx.Save(body).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID loads the question with its body, public test cases, editorial,
// tags and companies. Private test cases stay out of catalog reads.
func (r *questionRepository) GetByID(ctx context.Context, id uint) (models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Body").
		Preload("TestCases", "is_public = ?", true).
		Preload("Editorial").
		Preload("Tags").
		Preload("Companies").
		First(&question, id).Error
	if err != nil {
		return models.Question{}, err
	}
	return question, nil
}

func (r *questionRepository) List(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *questionRepository) SaveEditorial(ctx context.Context, editorial *models.Editorial) error {
	return r.db.WithContext(ctx).Save(editorial).Error
}

func (r *questionRepository) AssignTag(ctx context.Context, questionID, tagID uint) error {
	question := models.Question{ID: questionID}
	return r.db.WithContext(ctx).
		Model(&question).
		Association("Tags").
		Append(&models.Tag{ID: tagID})
}

func (r *questionRepository) AssignCompany(ctx context.Context, questionID, companyID uint) error {
	question := models.Question{ID: questionID}
	return r.db.WithContext(ctx).
		Model(&question).
		Association("Companies").
		Append(&models.Company{ID: companyID})
}
