package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/service"
	"github.com/sainanduk/problemsolving-go/internal/utils"
)

// SubmissionHandler manages grading and submission read endpoints.
type SubmissionHandler struct {
	grading     service.GradingService
	submissions service.SubmissionService
	logger      zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(grading service.GradingService, submissions service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		grading:     grading,
		submissions: submissions,
		logger:      logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("/:questionId", h.grade)
	router.Get("/user", h.listByUser)
	router.Get("/question/:questionId", h.listByQuestion)
	router.Get("/:id", h.get)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	questionID, err := parseUintParam(c, "questionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.grading.Grade(c.Context(), userID, questionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	response := dto.GradingResultResponse{
		Submission: dto.NewSubmissionResponse(result.Submission),
		Input:      result.Input,
		Output:     result.Output,
		Stdout:     result.Stdout,
	}

	if result.Passed {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "all test cases passed", response)
	}
	return utils.SendSuccess(c, "submission graded", response)
}

func (h *SubmissionHandler) listByUser(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	submissions, err := h.submissions.ListByUser(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) listByQuestion(c *fiber.Ctx) error {
	questionID, err := parseUintParam(c, "questionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submissions, err := h.submissions.ListByQuestion(c.Context(), questionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.submissions.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrNoTestcases):
		return utils.SendError(c, fiber.StatusBadRequest, "no test cases found for this question")
	case errors.Is(err, service.ErrCodeTooLong):
		return utils.SendError(c, fiber.StatusBadRequest, "code exceeds maximum length")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
