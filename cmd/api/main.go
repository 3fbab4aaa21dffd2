package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/sainanduk/problemsolving-go/internal/config"
	"github.com/sainanduk/problemsolving-go/internal/database"
	"github.com/sainanduk/problemsolving-go/internal/handler"
	"github.com/sainanduk/problemsolving-go/internal/middleware"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
	"github.com/sainanduk/problemsolving-go/internal/router"
	"github.com/sainanduk/problemsolving-go/internal/service"
	"github.com/sainanduk/problemsolving-go/pkg/judge0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.QuestionBody{},
		&models.TestCase{},
		&models.Editorial{},
		&models.Tag{},
		&models.Company{},
		&models.Submission{},
		&models.UserQuestionProgress{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Event publishing is best effort; the API runs without a broker.
	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, submission events disabled")
		} else {
			defer natsConn.Close()
		}
	}

	judgeClient, err := judge0.NewClient(judge0.Config{
		BaseURL: cfg.JudgeURL,
		APIKey:  cfg.JudgeAPIKey,
		APIHost: cfg.JudgeAPIHost,
		Timeout: cfg.JudgeTimeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create judge client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	questionRepo := repository.NewQuestionRepository(db)
	testCaseRepo := repository.NewTestCaseRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	tagRepo := repository.NewTagRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	testcaseCache := service.NewTestcaseCache(testCaseRepo, redisClient, cfg.TestcaseCacheTTL, logger)
	eventPublisher := service.NewSubmissionEventPublisher(natsConn, cfg.SubmissionEvents, logger)
	gradingService := service.NewGradingService(submissionRepo, progressRepo, testcaseCache, judgeClient, eventPublisher, validate, logger, service.GradingConfig{
		MaxCodeLength: cfg.MaxCodeLength,
	})
	submissionService := service.NewSubmissionService(submissionRepo, logger)
	questionService := service.NewQuestionService(questionRepo, testCaseRepo, tagRepo, companyRepo, validate, logger)
	tagService := service.NewTagService(tagRepo, validate, logger)
	companyService := service.NewCompanyService(companyRepo, validate, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, submissionRepo, logger)

	submissionHandler := handler.NewSubmissionHandler(gradingService, submissionService, logger)
	questionHandler := handler.NewQuestionHandler(questionService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	companyHandler := handler.NewCompanyHandler(companyService, logger)
	userHandler := handler.NewUserHandler(userService, dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		QuestionHandler:   questionHandler,
		SubmissionHandler: submissionHandler,
		TagHandler:        tagHandler,
		CompanyHandler:    companyHandler,
		UserHandler:       userHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
