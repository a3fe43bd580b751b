package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

var (
	// ErrCompetitionNotFound indicates the competition does not exist or is inactive.
	ErrCompetitionNotFound = errors.New("competition not found")
	// ErrAlreadyRegistered indicates the student already registered.
	ErrAlreadyRegistered = errors.New("already registered for this competition")
	// ErrRegistrationClosed indicates the registration deadline has passed.
	ErrRegistrationClosed = errors.New("registration deadline has passed")
)

// CompetitionService manages competitions and student registrations.
type CompetitionService interface {
	List(ctx context.Context) ([]dto.CompetitionResponse, error)
	Get(ctx context.Context, id uint) (dto.CompetitionResponse, error)
	Create(ctx context.Context, facultyID uint, payload dto.CompetitionCreateRequest) (dto.CompetitionResponse, error)
	Register(ctx context.Context, competitionID, studentID uint, payload dto.CompetitionRegisterRequest) (dto.RegistrationResponse, error)
	ListRegistrations(ctx context.Context, studentID uint) ([]dto.RegistrationResponse, error)
}

type competitionService struct {
	repo      repository.CompetitionRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCompetitionService builds the competition service.
func NewCompetitionService(
	repo repository.CompetitionRepository,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) CompetitionService {
	return &competitionService{
		repo:      repo,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "competition_service").Logger(),
		now:       time.Now,
	}
}

func (s *competitionService) List(ctx context.Context) ([]dto.CompetitionResponse, error) {
	competitions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCompetitionResponseSlice(competitions), nil
}

func (s *competitionService) Get(ctx context.Context, id uint) (dto.CompetitionResponse, error) {
	competition, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CompetitionResponse{}, ErrCompetitionNotFound
		}
		return dto.CompetitionResponse{}, err
	}
	return dto.NewCompetitionResponse(competition), nil
}

func (s *competitionService) Create(ctx context.Context, facultyID uint, payload dto.CompetitionCreateRequest) (dto.CompetitionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CompetitionResponse{}, err
	}

	prizes, err := json.Marshal(payload.Prizes)
	if err != nil {
		return dto.CompetitionResponse{}, err
	}

	competition := models.Competition{
		Title:       s.sanitizer.Sanitize(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		Type:        payload.Type,
		Category:    payload.Category,
		Duration:    payload.Duration,
		ImageURL:    payload.ImageURL,
		Prizes:      prizes,
		Rules:       s.sanitizer.Sanitize(payload.Rules),
		IsActive:    true,
		OrganizedBy: facultyID,
	}

	for _, field := range []struct {
		raw    *string
		target **time.Time
	}{
		{payload.StartDate, &competition.StartDate},
		{payload.EndDate, &competition.EndDate},
		{payload.RegistrationDeadline, &competition.RegistrationDeadline},
	} {
		if field.raw == nil {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, *field.raw)
		if err != nil {
			return dto.CompetitionResponse{}, err
		}
		*field.target = &parsed
	}

	if err := s.repo.Create(ctx, &competition); err != nil {
		return dto.CompetitionResponse{}, err
	}

	s.logger.Info().Uint("competition_id", competition.ID).Uint("faculty_id", facultyID).Msg("competition created")

	return dto.NewCompetitionResponse(competition), nil
}

func (s *competitionService) Register(ctx context.Context, competitionID, studentID uint, payload dto.CompetitionRegisterRequest) (dto.RegistrationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RegistrationResponse{}, err
	}

	competition, err := s.repo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RegistrationResponse{}, ErrCompetitionNotFound
		}
		return dto.RegistrationResponse{}, err
	}
	if !competition.IsActive {
		return dto.RegistrationResponse{}, ErrCompetitionNotFound
	}
	if !competition.RegistrationOpen(s.now()) {
		return dto.RegistrationResponse{}, ErrRegistrationClosed
	}

	if _, err := s.repo.GetRegistration(ctx, competitionID, studentID); err == nil {
		return dto.RegistrationResponse{}, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RegistrationResponse{}, err
	}

	teamMembers, err := json.Marshal(payload.TeamMembers)
	if err != nil {
		return dto.RegistrationResponse{}, err
	}

	registration := models.CompetitionRegistration{
		CompetitionID: competitionID,
		StudentID:     studentID,
		TeamName:      payload.TeamName,
		TeamMembers:   teamMembers,
		Competition:   competition,
	}
	if err := s.repo.CreateRegistration(ctx, &registration); err != nil {
		return dto.RegistrationResponse{}, err
	}

	s.publish(ctx, "competition.registered", map[string]interface{}{
		"competition_id": competitionID,
		"student_id":     studentID,
	})

	s.logger.Info().Uint("competition_id", competitionID).Uint("student_id", studentID).Msg("student registered")

	return dto.NewRegistrationResponse(registration), nil
}

func (s *competitionService) ListRegistrations(ctx context.Context, studentID uint) ([]dto.RegistrationResponse, error) {
	registrations, err := s.repo.ListRegistrationsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewRegistrationResponseSlice(registrations), nil
}

func (s *competitionService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
