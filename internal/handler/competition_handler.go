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

// CompetitionHandler manages competition and registration endpoints.
type CompetitionHandler struct {
	service service.CompetitionService
	logger  zerolog.Logger
}

// NewCompetitionHandler builds a competition handler instance.
func NewCompetitionHandler(service service.CompetitionService, logger zerolog.Logger) *CompetitionHandler {
	return &CompetitionHandler{
		service: service,
		logger:  logger.With().Str("component", "competition_handler").Logger(),
	}
}

// RegisterPublic attaches the competition read routes. Browsing upcoming
// competitions requires no account.
func (h *CompetitionHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// Register attaches the authenticated competition routes to the provided router group.
func (h *CompetitionHandler) Register(router fiber.Router, requireFaculty, requireStudent fiber.Handler) {
	router.Post("", requireFaculty, h.create)
	router.Post("/:id/register", requireStudent, h.register)
}

// RegisterRegistrations attaches the student registration listing route.
func (h *CompetitionHandler) RegisterRegistrations(router fiber.Router, requireStudent fiber.Handler) {
	router.Get("/my-registrations", requireStudent, h.listRegistrations)
}

func (h *CompetitionHandler) list(c *fiber.Ctx) error {
	competitions, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "competitions retrieved", competitions)
}

func (h *CompetitionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	competition, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "competition retrieved", competition)
}

func (h *CompetitionHandler) create(c *fiber.Ctx) error {
	var payload dto.CompetitionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	competition, err := h.service.Create(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "competition created", competition)
}

func (h *CompetitionHandler) register(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CompetitionRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	registration, err := h.service.Register(c.UserContext(), id, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registered successfully", registration)
}

func (h *CompetitionHandler) listRegistrations(c *fiber.Ctx) error {
	registrations, err := h.service.ListRegistrations(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "registrations retrieved", registrations)
}

func (h *CompetitionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCompetitionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "competition not found")
	case errors.Is(err, service.ErrAlreadyRegistered):
		return utils.SendError(c, fiber.StatusConflict, "already registered for this competition")
	case errors.Is(err, service.ErrRegistrationClosed):
		return utils.SendError(c, fiber.StatusConflict, "registration deadline has passed")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
