package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// AnalyticsRepository aggregates platform-wide counts for the faculty overview.
type AnalyticsRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountActiveStudents(ctx context.Context) (int64, error)
	CountCourses(ctx context.Context) (int64, error)
	CountEnrollments(ctx context.Context) (int64, error)
	CountInternships(ctx context.Context) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository instantiates a GORM-backed repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Count(&count).Error
	return count, err
}

// CountActiveStudents counts students with at least one course enrollment.
func (r *analyticsRepository) CountActiveStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CourseEnrollment{}).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountCourses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountEnrollments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CourseEnrollment{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountInternships(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Internship{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountApplications(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InternshipApplication{}).Count(&count).Error
	return count, err
}
