package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sainanduk/problemsolving-go/internal/config"
	"github.com/sainanduk/problemsolving-go/internal/handler"
	"github.com/sainanduk/problemsolving-go/internal/middleware"
	"github.com/sainanduk/problemsolving-go/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	QuestionHandler   *handler.QuestionHandler
	SubmissionHandler *handler.SubmissionHandler
	TagHandler        *handler.TagHandler
	CompanyHandler    *handler.CompanyHandler
	UserHandler       *handler.UserHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Question catalog is readable without auth; mutations share the group
	if deps.QuestionHandler != nil {
		questionGroup := api.Group("/questions")
		deps.QuestionHandler.Register(questionGroup)
	}

	if deps.TagHandler != nil {
		tagGroup := api.Group("/tags")
		deps.TagHandler.Register(tagGroup)
	}

	if deps.CompanyHandler != nil {
		companyGroup := api.Group("/companies")
		deps.CompanyHandler.Register(companyGroup)
	}

	// Grading is rate limited per user on top of auth
	if deps.SubmissionHandler != nil {
		submissionGroup := api.Group("/submissions", jwtMiddleware,
			middleware.RateLimit("submissions", cfg.SubmissionBurst, time.Minute))
		deps.SubmissionHandler.Register(submissionGroup)
	}

	if deps.UserHandler != nil {
		userGroup := api.Group("/users", jwtMiddleware)
		deps.UserHandler.Register(userGroup)
	}
}
