package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

// TagService exposes tag management operations.
type TagService interface {
	Create(ctx context.Context, payload dto.TagRequest) (dto.TagResponse, error)
	Update(ctx context.Context, id uint, payload dto.TagRequest) (dto.TagResponse, error)
	Get(ctx context.Context, id uint) (dto.TagResponse, error)
	List(ctx context.Context) ([]dto.TagResponse, error)
	Delete(ctx context.Context, id uint) error
}

type tagService struct {
	tags      repository.TagRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTagService constructs the tag service.
func NewTagService(tags repository.TagRepository, validate *validator.Validate, logger zerolog.Logger) TagService {
	return &tagService{
		tags:      tags,
		validator: validate,
		logger:    logger.With().Str("component", "tag_service").Logger(),
	}
}

func (s *tagService) Create(ctx context.Context, payload dto.TagRequest) (dto.TagResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TagResponse{}, err
	}

	tag := models.Tag{Name: payload.Name, Description: payload.Description}
	if err := s.tags.Create(ctx, &tag); err != nil {
		return dto.TagResponse{}, err
	}
	return dto.NewTagResponse(tag), nil
}

func (s *tagService) Update(ctx context.Context, id uint, payload dto.TagRequest) (dto.TagResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TagResponse{}, err
	}

	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TagResponse{}, ErrTagNotFound
		}
		return dto.TagResponse{}, err
	}

	tag.Name = payload.Name
	tag.Description = payload.Description
	if err := s.tags.Update(ctx, &tag); err != nil {
		return dto.TagResponse{}, err
	}
	return dto.NewTagResponse(tag), nil
}

func (s *tagService) Get(ctx context.Context, id uint) (dto.TagResponse, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TagResponse{}, ErrTagNotFound
		}
		return dto.TagResponse{}, err
	}
	return dto.NewTagResponse(tag), nil
}

func (s *tagService) List(ctx context.Context) ([]dto.TagResponse, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTagResponses(tags), nil
}

func (s *tagService) Delete(ctx context.Context, id uint) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}
