package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
)

// CompanyRepository exposes persistence helpers for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (models.Company, error)
	GetBySlug(ctx context.Context, slug string) (models.Company, error)
	List(ctx context.Context, limit, offset int) ([]models.Company, int64, error)
	Delete(ctx context.Context, id uint) error
}

// NewCompanyRepository constructs a company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

type companyRepository struct {
	db *gorm.DB
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uint) (models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return models.Company{}, err
	}
	return company, nil
}

func (r *companyRepository) GetBySlug(ctx context.Context, slug string) (models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&company).Error
	if err != nil {
		return models.Company{}, err
	}
	return company, nil
}

func (r *companyRepository) List(ctx context.Context, limit, offset int) ([]models.Company, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Company{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
