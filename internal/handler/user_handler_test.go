package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/config"
	"github.com/sainanduk/problemsolving-go/internal/handler"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
	"github.com/sainanduk/problemsolving-go/internal/router"
	"github.com/sainanduk/problemsolving-go/internal/service"
)

func setupUserApp(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:user_handler?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Tag{},
		&models.Company{},
		&models.Submission{},
		&models.UserQuestionProgress{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	userService := service.NewUserService(repository.NewUserRepository(db), validate, logger)
	dashboardService := service.NewDashboardService(repository.NewDashboardRepository(db), repository.NewSubmissionRepository(db), logger)

	app := fiber.New()
	userHandler := handler.NewUserHandler(userService, dashboardService, logger)

	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		UserHandler: userHandler,
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			return c.Next()
		},
	})

	return app, db
}

func TestUserDashboardEndpoint(t *testing.T) {
	userID := uuid.New()
	app, db := setupUserApp(t, userID)

	user := models.User{ID: userID, Username: "dash-user", Email: "dash-user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	question := models.Question{Slug: "dash-q", Title: "Dash", Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&question).Error)

	solvedAt := time.Now().UTC()
	require.NoError(t, db.Create(&models.UserQuestionProgress{
		UserID:       userID,
		QuestionID:   question.ID,
		Status:       models.ProgressStatusSolved,
		LastSolvedAt: &solvedAt,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/users/dashboard", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Solved     int64 `json:"solved"`
			Attempted  int64 `json:"attempted"`
			Difficulty struct {
				Easy int64 `json:"easy"`
			} `json:"difficulty"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.EqualValues(t, 1, envelope.Data.Solved)
	require.EqualValues(t, 1, envelope.Data.Difficulty.Easy)
}

func TestUserActivityEndpointEmpty(t *testing.T) {
	userID := uuid.New()
	app, db := setupUserApp(t, userID)

	user := models.User{ID: userID, Username: "quiet-user", Email: "quiet-user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/users/activity", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"submissions":[]`)
}

func TestUserMeEndpoint(t *testing.T) {
	userID := uuid.New()
	app, db := setupUserApp(t, userID)

	user := models.User{ID: userID, Username: "me-user", Email: "me-user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/users/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			ID       uuid.UUID `json:"id"`
			Username string    `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, userID, envelope.Data.ID)
	require.Equal(t, "me-user", envelope.Data.Username)
}

func TestHealthEndpoint(t *testing.T) {
	app := fiber.New()
	router.Register(app, config.Config{AppName: "Judge API", AppEnv: "test"}, router.Dependencies{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"status":"ok"`)
	require.Contains(t, string(raw), "Judge API")
}
