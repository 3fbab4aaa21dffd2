package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

// CompanyService exposes company management operations.
type CompanyService interface {
	Create(ctx context.Context, payload dto.CompanyRequest) (dto.CompanyResponse, error)
	Update(ctx context.Context, id uint, payload dto.CompanyRequest) (dto.CompanyResponse, error)
	Get(ctx context.Context, id uint) (dto.CompanyResponse, error)
	GetBySlug(ctx context.Context, companySlug string) (dto.CompanyResponse, error)
	List(ctx context.Context, page, limit int) (dto.CompanyListResponse, error)
	Delete(ctx context.Context, id uint) error
}

type companyService struct {
	companies repository.CompanyRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCompanyService constructs the company service.
func NewCompanyService(companies repository.CompanyRepository, validate *validator.Validate, logger zerolog.Logger) CompanyService {
	return &companyService{
		companies: companies,
		validator: validate,
		logger:    logger.With().Str("component", "company_service").Logger(),
	}
}

func (s *companyService) Create(ctx context.Context, payload dto.CompanyRequest) (dto.CompanyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CompanyResponse{}, err
	}

	company := models.Company{
		Name:        payload.Name,
		Slug:        companySlug(payload),
		Description: payload.Description,
	}
	if err := s.companies.Create(ctx, &company); err != nil {
		return dto.CompanyResponse{}, err
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *companyService) Update(ctx context.Context, id uint, payload dto.CompanyRequest) (dto.CompanyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CompanyResponse{}, err
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CompanyResponse{}, ErrCompanyNotFound
		}
		return dto.CompanyResponse{}, err
	}

	company.Name = payload.Name
	company.Slug = companySlug(payload)
	company.Description = payload.Description
	if err := s.companies.Update(ctx, &company); err != nil {
		return dto.CompanyResponse{}, err
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *companyService) Get(ctx context.Context, id uint) (dto.CompanyResponse, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CompanyResponse{}, ErrCompanyNotFound
		}
		return dto.CompanyResponse{}, err
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *companyService) GetBySlug(ctx context.Context, companySlug string) (dto.CompanyResponse, error) {
	company, err := s.companies.GetBySlug(ctx, companySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CompanyResponse{}, ErrCompanyNotFound
		}
		return dto.CompanyResponse{}, err
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *companyService) List(ctx context.Context, page, limit int) (dto.CompanyListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	companies, total, err := s.companies.List(ctx, limit, offset)
	if err != nil {
		return dto.CompanyListResponse{}, err
	}

	return dto.CompanyListResponse{
		Companies: dto.NewCompanyResponses(companies),
		Pagination: dto.Pagination{
			TotalItems:   total,
			TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
			CurrentPage:  page,
			ItemsPerPage: limit,
		},
	}, nil
}

func (s *companyService) Delete(ctx context.Context, id uint) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	return nil
}

func companySlug(payload dto.CompanyRequest) string {
	if trimmed := strings.TrimSpace(payload.Slug); trimmed != "" {
		return trimmed
	}
	return slug.Make(payload.Name)
}
