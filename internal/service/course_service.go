package service

import (
	"context"
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
	// ErrCourseNotFound indicates the course does not exist or is inactive.
	ErrCourseNotFound = errors.New("course not found")
	// ErrAlreadyEnrolled indicates the student already enrolled in the course.
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	// ErrEnrollmentNotFound indicates the enrollment does not exist.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	// ErrEnrollmentForbidden indicates the enrollment belongs to another student.
	ErrEnrollmentForbidden = errors.New("enrollment belongs to another student")
)

// CourseService manages the course catalog and student enrollments.
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	Create(ctx context.Context, facultyID uint, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Enroll(ctx context.Context, courseID, studentID uint) (dto.EnrollmentResponse, error)
	ListEnrollments(ctx context.Context, studentID uint) ([]dto.EnrollmentResponse, error)
	UpdateProgress(ctx context.Context, enrollmentID, studentID uint, payload dto.ProgressUpdateRequest) (dto.EnrollmentResponse, error)
}

type courseService struct {
	repo      repository.CourseRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCourseService builds the course service. Free-text fields submitted by
// faculty are sanitized before storage.
func NewCourseService(
	repo repository.CourseRepository,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		repo:      repo,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "course_service").Logger(),
		now:       time.Now,
	}
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, facultyID uint, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:       s.sanitizer.Sanitize(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		Category:    payload.Category,
		Level:       payload.Level,
		Duration:    payload.Duration,
		ImageURL:    payload.ImageURL,
		Price:       payload.Price,
		IsActive:    true,
		CreatedBy:   facultyID,
	}
	if err := s.repo.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Uint("faculty_id", facultyID).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Enroll(ctx context.Context, courseID, studentID uint) (dto.EnrollmentResponse, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrCourseNotFound
		}
		return dto.EnrollmentResponse{}, err
	}
	if !course.IsActive {
		return dto.EnrollmentResponse{}, ErrCourseNotFound
	}

	if _, err := s.repo.GetEnrollment(ctx, courseID, studentID); err == nil {
		return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.CourseEnrollment{
		CourseID:  courseID,
		StudentID: studentID,
		Course:    course,
	}
	if err := s.repo.CreateEnrollment(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.publish(ctx, "course.enrolled", map[string]interface{}{
		"course_id":  courseID,
		"student_id": studentID,
	})

	s.logger.Info().Uint("course_id", courseID).Uint("student_id", studentID).Msg("student enrolled")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *courseService) ListEnrollments(ctx context.Context, studentID uint) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.ListEnrollmentsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

func (s *courseService) UpdateProgress(ctx context.Context, enrollmentID, studentID uint, payload dto.ProgressUpdateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	enrollment, err := s.repo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrEnrollmentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}
	if enrollment.StudentID != studentID {
		return dto.EnrollmentResponse{}, ErrEnrollmentForbidden
	}

	enrollment.Progress = *payload.Progress
	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := s.now()
		enrollment.CompletedAt = &now
	}

	if err := s.repo.SaveEnrollment(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *courseService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
