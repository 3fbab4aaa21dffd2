package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

// DashboardService produces aggregated per-user progress metrics.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (dto.DashboardResponse, error)
	GetActivity(ctx context.Context, userID uuid.UUID) (dto.ActivityResponse, error)
}

type dashboardService struct {
	dashboard   repository.DashboardRepository
	submissions repository.SubmissionRepository
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(dashboard repository.DashboardRepository, submissions repository.SubmissionRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		dashboard:   dashboard,
		submissions: submissions,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (dto.DashboardResponse, error) {
	statusCounts, err := s.dashboard.StatusCounts(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		Solved:       statusCounts[models.ProgressStatusSolved],
		Attempted:    statusCounts[models.ProgressStatusAttempted],
		NotAttempted: statusCounts[models.ProgressStatusNotAttempted],
		Tags:         []repository.NamedSolvedCount{},
		Companies:    []repository.NamedSolvedCount{},
	}

	if len(statusCounts) == 0 {
		return response, nil
	}

	difficulties, err := s.dashboard.SolvedByDifficulty(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	for _, row := range difficulties {
		switch strings.ToUpper(row.Difficulty) {
		case models.DifficultyEasy:
			response.Difficulty.Easy = row.Count
		case models.DifficultyMedium:
			response.Difficulty.Medium = row.Count
		case models.DifficultyHard:
			response.Difficulty.Hard = row.Count
		}
	}

	tags, err := s.dashboard.SolvedByTag(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	if tags != nil {
		response.Tags = tags
	}

	companies, err := s.dashboard.SolvedByCompany(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	if companies != nil {
		response.Companies = companies
	}

	return response, nil
}

func (s *dashboardService) GetActivity(ctx context.Context, userID uuid.UUID) (dto.ActivityResponse, error) {
	counts, err := s.submissions.DailyCounts(ctx, userID)
	if err != nil {
		return dto.ActivityResponse{}, err
	}
	if counts == nil {
		counts = []repository.DailySubmissionCount{}
	}
	return dto.ActivityResponse{Submissions: counts}, nil
}
