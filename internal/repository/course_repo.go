package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// CourseRepository defines persistence operations for courses and enrollments.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error
	GetEnrollment(ctx context.Context, courseID, studentID uint) (models.CourseEnrollment, error)
	GetEnrollmentByID(ctx context.Context, id uint) (models.CourseEnrollment, error)
	SaveEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error
	ListEnrollmentsForStudent(ctx context.Context, studentID uint) ([]models.CourseEnrollment, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *courseRepository) GetEnrollment(ctx context.Context, courseID, studentID uint) (models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&enrollment).Error
	if err != nil {
		return models.CourseEnrollment{}, err
	}
	return enrollment, nil
}

func (r *courseRepository) GetEnrollmentByID(ctx context.Context, id uint) (models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	if err := r.db.WithContext(ctx).Preload("Course").First(&enrollment, id).Error; err != nil {
		return models.CourseEnrollment{}, err
	}
	return enrollment, nil
}

func (r *courseRepository) SaveEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *courseRepository) ListEnrollmentsForStudent(ctx context.Context, studentID uint) ([]models.CourseEnrollment, error) {
	var enrollments []models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}
