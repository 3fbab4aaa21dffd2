package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/service"
	"github.com/sainanduk/problemsolving-go/internal/utils"
)

// CompanyHandler manages company endpoints.
type CompanyHandler struct {
	service service.CompanyService
	logger  zerolog.Logger
}

// NewCompanyHandler builds a company handler instance.
func NewCompanyHandler(service service.CompanyService, logger zerolog.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger.With().Str("component", "company_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CompanyHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/slug/:slug", h.getBySlug)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *CompanyHandler) list(c *fiber.Ctx) error {
	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 20)

	companies, err := h.service.List(c.Context(), page, limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "companies retrieved", companies)
}

func (h *CompanyHandler) create(c *fiber.Ctx) error {
	var payload dto.CompanyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	company, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "company created", company)
}

func (h *CompanyHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	company, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "company retrieved", company)
}

func (h *CompanyHandler) getBySlug(c *fiber.Ctx) error {
	companySlug := strings.TrimSpace(c.Params("slug"))
	if companySlug == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "slug is required")
	}

	company, err := h.service.GetBySlug(c.Context(), companySlug)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "company retrieved", company)
}

func (h *CompanyHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CompanyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	company, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "company updated", company)
}

func (h *CompanyHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "company deleted", nil)
}

func (h *CompanyHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "company not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
