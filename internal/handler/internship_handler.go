package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/service"
	"github.com/acharyaskillx/skillquestify-api/internal/utils"
)

// InternshipHandler manages posting and application endpoints.
type InternshipHandler struct {
	service service.InternshipService
	logger  zerolog.Logger
}

// NewInternshipHandler builds an internship handler instance.
func NewInternshipHandler(service service.InternshipService, logger zerolog.Logger) *InternshipHandler {
	return &InternshipHandler{
		service: service,
		logger:  logger.With().Str("component", "internship_handler").Logger(),
	}
}

// RegisterPublic attaches the posting read routes. Browsing the board
// requires no account.
func (h *InternshipHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// Register attaches the authenticated posting routes to the provided router group.
func (h *InternshipHandler) Register(router fiber.Router, requireRecruiter, requireStudent fiber.Handler) {
	router.Post("", requireRecruiter, h.create)
	router.Post("/:id/apply", requireStudent, h.apply)
	router.Get("/:id/applications", requireRecruiter, h.listApplications)
}

// RegisterApplications attaches the application routes outside the posting group.
func (h *InternshipHandler) RegisterApplications(router fiber.Router, requireRecruiter, requireStudent fiber.Handler) {
	router.Get("/my-applications", requireStudent, h.listMyApplications)
	router.Put("/applications/:id/status", requireRecruiter, h.updateStatus)
}

func (h *InternshipHandler) list(c *fiber.Ctx) error {
	internships, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "internships retrieved", internships)
}

func (h *InternshipHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	internship, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "internship retrieved", internship)
}

func (h *InternshipHandler) create(c *fiber.Ctx) error {
	var payload dto.InternshipCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	internship, err := h.service.Create(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "internship posted", internship)
}

func (h *InternshipHandler) apply(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ApplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.service.Apply(c.UserContext(), id, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *InternshipHandler) listApplications(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	applications, err := h.service.ListApplicationsForInternship(c.UserContext(), id, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *InternshipHandler) listMyApplications(c *fiber.Ctx) error {
	applications, err := h.service.ListApplicationsForStudent(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *InternshipHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ApplicationStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.service.UpdateApplicationStatus(c.UserContext(), id, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "application status updated", application)
}

func (h *InternshipHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInternshipNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "internship not found")
	case errors.Is(err, service.ErrAlreadyApplied):
		return utils.SendError(c, fiber.StatusConflict, "already applied to this internship")
	case errors.Is(err, service.ErrApplicationsClosed):
		return utils.SendError(c, fiber.StatusConflict, "application deadline has passed")
	case errors.Is(err, service.ErrApplicationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "application not found")
	case errors.Is(err, service.ErrInternshipForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "internship belongs to another recruiter")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
