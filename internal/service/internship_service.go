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
	// ErrInternshipNotFound indicates the posting does not exist or is inactive.
	ErrInternshipNotFound = errors.New("internship not found")
	// ErrAlreadyApplied indicates the student already applied to the posting.
	ErrAlreadyApplied = errors.New("already applied to this internship")
	// ErrApplicationsClosed indicates the posting deadline has passed.
	ErrApplicationsClosed = errors.New("application deadline has passed")
	// ErrApplicationNotFound indicates the application does not exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrInternshipForbidden indicates the posting belongs to another recruiter.
	ErrInternshipForbidden = errors.New("internship belongs to another recruiter")
)

// InternshipService manages postings and student applications.
type InternshipService interface {
	List(ctx context.Context) ([]dto.InternshipResponse, error)
	Get(ctx context.Context, id uint) (dto.InternshipResponse, error)
	Create(ctx context.Context, recruiterID uint, payload dto.InternshipCreateRequest) (dto.InternshipResponse, error)
	Apply(ctx context.Context, internshipID, studentID uint, payload dto.ApplyRequest) (dto.ApplicationResponse, error)
	ListApplicationsForStudent(ctx context.Context, studentID uint) ([]dto.ApplicationResponse, error)
	ListApplicationsForInternship(ctx context.Context, internshipID, recruiterID uint) ([]dto.ApplicationResponse, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, recruiterID uint, payload dto.ApplicationStatusUpdateRequest) (dto.ApplicationResponse, error)
}

type internshipService struct {
	repo      repository.InternshipRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewInternshipService builds the internship service.
func NewInternshipService(
	repo repository.InternshipRepository,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) InternshipService {
	return &internshipService{
		repo:      repo,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "internship_service").Logger(),
		now:       time.Now,
	}
}

func (s *internshipService) List(ctx context.Context) ([]dto.InternshipResponse, error) {
	internships, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewInternshipResponseSlice(internships), nil
}

func (s *internshipService) Get(ctx context.Context, id uint) (dto.InternshipResponse, error) {
	internship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InternshipResponse{}, ErrInternshipNotFound
		}
		return dto.InternshipResponse{}, err
	}
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Create(ctx context.Context, recruiterID uint, payload dto.InternshipCreateRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	requirements, err := json.Marshal(payload.Requirements)
	if err != nil {
		return dto.InternshipResponse{}, err
	}
	skills, err := json.Marshal(payload.Skills)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	internship := models.Internship{
		Title:        s.sanitizer.Sanitize(payload.Title),
		Description:  s.sanitizer.Sanitize(payload.Description),
		Company:      payload.Company,
		Location:     payload.Location,
		Type:         payload.Type,
		Duration:     payload.Duration,
		Salary:       payload.Salary,
		Requirements: requirements,
		Skills:       skills,
		IsRemote:     payload.IsRemote,
		IsActive:     true,
		PostedBy:     recruiterID,
	}
	if payload.ApplicationDeadline != nil {
		deadline, err := time.Parse(time.RFC3339, *payload.ApplicationDeadline)
		if err != nil {
			return dto.InternshipResponse{}, err
		}
		internship.ApplicationDeadline = &deadline
	}

	if err := s.repo.Create(ctx, &internship); err != nil {
		return dto.InternshipResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internship.ID).Uint("recruiter_id", recruiterID).Msg("internship posted")

	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Apply(ctx context.Context, internshipID, studentID uint, payload dto.ApplyRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}

	internship, err := s.repo.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrInternshipNotFound
		}
		return dto.ApplicationResponse{}, err
	}
	if !internship.IsActive {
		return dto.ApplicationResponse{}, ErrInternshipNotFound
	}
	if internship.ApplicationDeadline != nil && s.now().After(*internship.ApplicationDeadline) {
		return dto.ApplicationResponse{}, ErrApplicationsClosed
	}

	if _, err := s.repo.GetApplication(ctx, internshipID, studentID); err == nil {
		return dto.ApplicationResponse{}, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ApplicationResponse{}, err
	}

	application := models.InternshipApplication{
		InternshipID: internshipID,
		StudentID:    studentID,
		Status:       models.ApplicationStatusPending,
		CoverLetter:  s.sanitizer.Sanitize(payload.CoverLetter),
		Internship:   internship,
	}
	if err := s.repo.CreateApplication(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.publish(ctx, "internship.applied", map[string]interface{}{
		"internship_id": internshipID,
		"student_id":    studentID,
	})

	s.logger.Info().Uint("internship_id", internshipID).Uint("student_id", studentID).Msg("application submitted")

	return dto.NewApplicationResponse(application), nil
}

func (s *internshipService) ListApplicationsForStudent(ctx context.Context, studentID uint) ([]dto.ApplicationResponse, error) {
	applications, err := s.repo.ListApplicationsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *internshipService) ListApplicationsForInternship(ctx context.Context, internshipID, recruiterID uint) ([]dto.ApplicationResponse, error) {
	internship, err := s.repo.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	if internship.PostedBy != recruiterID {
		return nil, ErrInternshipForbidden
	}

	applications, err := s.repo.ListApplicationsForInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *internshipService) UpdateApplicationStatus(ctx context.Context, applicationID, recruiterID uint, payload dto.ApplicationStatusUpdateRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}

	application, err := s.repo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}
	if application.Internship.PostedBy != recruiterID {
		return dto.ApplicationResponse{}, ErrInternshipForbidden
	}

	application.Status = payload.Status
	if err := s.repo.SaveApplication(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().
		Uint("application_id", application.ID).
		Str("status", application.Status).
		Msg("application status updated")

	return dto.NewApplicationResponse(application), nil
}

func (s *internshipService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
