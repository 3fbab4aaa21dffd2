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

// UserHandler manages user account, dashboard and activity endpoints.
type UserHandler struct {
	users     service.UserService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewUserHandler builds a user handler instance.
func NewUserHandler(users service.UserService, dashboard service.DashboardService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/me", h.me)
	router.Get("/dashboard", h.getDashboard)
	router.Get("/activity", h.getActivity)
	router.Put("/me", h.update)
	router.Delete("/me", h.delete)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var payload dto.UserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) me(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := h.users.Get(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.UserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Update(c.Context(), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.users.Delete(c.Context(), userID); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user deleted", nil)
}

func (h *UserHandler) getDashboard(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	dashboard, err := h.dashboard.GetDashboard(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *UserHandler) getActivity(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == uuid.Nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	activity, err := h.dashboard.GetActivity(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "activity retrieved", activity)
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
