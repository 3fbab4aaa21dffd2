package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

func TestDashboardAggregation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:dashboard_agg?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Tag{},
		&models.Company{},
		&models.Submission{},
		&models.UserQuestionProgress{},
	))

	user := models.User{Username: "dash", Email: "dash@example.com"}
	require.NoError(t, db.Create(&user).Error)

	arrays := models.Tag{Name: "arrays"}
	graphs := models.Tag{Name: "graphs"}
	require.NoError(t, db.Create(&arrays).Error)
	require.NoError(t, db.Create(&graphs).Error)

	acme := models.Company{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&acme).Error)

	questions := []models.Question{
		{Slug: "q-easy", Title: "Easy One", Difficulty: models.DifficultyEasy, Tags: []models.Tag{arrays}, Companies: []models.Company{acme}},
		{Slug: "q-medium", Title: "Medium One", Difficulty: models.DifficultyMedium, Tags: []models.Tag{arrays, graphs}},
		{Slug: "q-hard", Title: "Hard One", Difficulty: models.DifficultyHard},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}

	solvedAt := time.Now().UTC()
	progress := []models.UserQuestionProgress{
		{UserID: user.ID, QuestionID: questions[0].ID, Status: models.ProgressStatusSolved, LastSolvedAt: &solvedAt},
		{UserID: user.ID, QuestionID: questions[1].ID, Status: models.ProgressStatusSolved, LastSolvedAt: &solvedAt},
		{UserID: user.ID, QuestionID: questions[2].ID, Status: models.ProgressStatusAttempted},
	}
	for i := range progress {
		require.NoError(t, db.Create(&progress[i]).Error)
	}

	svc := NewDashboardService(repository.NewDashboardRepository(db), repository.NewSubmissionRepository(db), zerolog.Nop())

	dashboard, err := svc.GetDashboard(context.Background(), user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, dashboard.Solved)
	require.EqualValues(t, 1, dashboard.Attempted)
	require.EqualValues(t, 0, dashboard.NotAttempted)
	require.EqualValues(t, 1, dashboard.Difficulty.Easy)
	require.EqualValues(t, 1, dashboard.Difficulty.Medium)
	require.EqualValues(t, 0, dashboard.Difficulty.Hard)

	require.Len(t, dashboard.Tags, 2)
	require.Equal(t, "arrays", dashboard.Tags[0].Name)
	require.EqualValues(t, 2, dashboard.Tags[0].Solved)
	require.Equal(t, "graphs", dashboard.Tags[1].Name)
	require.EqualValues(t, 1, dashboard.Tags[1].Solved)

	require.Len(t, dashboard.Companies, 1)
	require.Equal(t, "Acme", dashboard.Companies[0].Name)
	require.EqualValues(t, 1, dashboard.Companies[0].Solved)
}

func TestDashboardEmptyUser(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:dashboard_empty?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Tag{},
		&models.Company{},
		&models.Submission{},
		&models.UserQuestionProgress{},
	))

	user := models.User{Username: "fresh", Email: "fresh@example.com"}
	require.NoError(t, db.Create(&user).Error)

	svc := NewDashboardService(repository.NewDashboardRepository(db), repository.NewSubmissionRepository(db), zerolog.Nop())

	dashboard, err := svc.GetDashboard(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, dashboard.Solved)
	require.Zero(t, dashboard.Attempted)
	require.NotNil(t, dashboard.Tags)
	require.Empty(t, dashboard.Tags)
	require.NotNil(t, dashboard.Companies)
	require.Empty(t, dashboard.Companies)
}

func TestActivityDailyCounts(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:dashboard_activity?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Question{}, &models.Submission{}, &models.UserQuestionProgress{}))

	user := models.User{Username: "active", Email: "active@example.com"}
	require.NoError(t, db.Create(&user).Error)

	question := models.Question{Slug: "q-act", Title: "Activity", Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&question).Error)

	today := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	yesterday := today.Add(-24 * time.Hour)

	for _, submittedAt := range []time.Time{yesterday, today, today.Add(time.Hour)} {
		submission := models.Submission{
			UserID:      user.ID,
			QuestionID:  question.ID,
			Language:    "71",
			Code:        "print(1)",
			Status:      models.SubmissionStatusAccepted,
			SubmittedAt: submittedAt,
		}
		require.NoError(t, db.Create(&submission).Error)
	}

	svc := NewDashboardService(repository.NewDashboardRepository(db), repository.NewSubmissionRepository(db), zerolog.Nop())

	activity, err := svc.GetActivity(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, activity.Submissions, 2)
	require.Equal(t, "2026-08-28", activity.Submissions[0].Date)
	require.EqualValues(t, 1, activity.Submissions[0].Count)
	require.Equal(t, "2026-08-29", activity.Submissions[1].Date)
	require.EqualValues(t, 2, activity.Submissions[1].Count)
}
