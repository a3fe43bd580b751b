package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// InternshipRepository defines persistence operations for postings and applications.
type InternshipRepository interface {
	List(ctx context.Context) ([]models.Internship, error)
	GetByID(ctx context.Context, id uint) (models.Internship, error)
	Create(ctx context.Context, internship *models.Internship) error
	CreateApplication(ctx context.Context, application *models.InternshipApplication) error
	GetApplication(ctx context.Context, internshipID, studentID uint) (models.InternshipApplication, error)
	GetApplicationByID(ctx context.Context, id uint) (models.InternshipApplication, error)
	SaveApplication(ctx context.Context, application *models.InternshipApplication) error
	ListApplicationsForStudent(ctx context.Context, studentID uint) ([]models.InternshipApplication, error)
	ListApplicationsForInternship(ctx context.Context, internshipID uint) ([]models.InternshipApplication, error)
}

type internshipRepository struct {
	db *gorm.DB
}

// NewInternshipRepository instantiates a GORM-backed repository.
func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

func (r *internshipRepository) List(ctx context.Context) ([]models.Internship, error) {
	var internships []models.Internship
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

func (r *internshipRepository) GetByID(ctx context.Context, id uint) (models.Internship, error) {
	var internship models.Internship
	if err := r.db.WithContext(ctx).First(&internship, id).Error; err != nil {
		return models.Internship{}, err
	}
	return internship, nil
}

func (r *internshipRepository) Create(ctx context.Context, internship *models.Internship) error {
	return r.db.WithContext(ctx).Create(internship).Error
}

func (r *internshipRepository) CreateApplication(ctx context.Context, application *models.InternshipApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *internshipRepository) GetApplication(ctx context.Context, internshipID, studentID uint) (models.InternshipApplication, error) {
	var application models.InternshipApplication
	err := r.db.WithContext(ctx).
		Where("internship_id = ? AND student_id = ?", internshipID, studentID).
		First(&application).Error
	if err != nil {
		return models.InternshipApplication{}, err
	}
	return application, nil
}

func (r *internshipRepository) GetApplicationByID(ctx context.Context, id uint) (models.InternshipApplication, error) {
	var application models.InternshipApplication
	if err := r.db.WithContext(ctx).Preload("Internship").First(&application, id).Error; err != nil {
		return models.InternshipApplication{}, err
	}
	return application, nil
}

func (r *internshipRepository) SaveApplication(ctx context.Context, application *models.InternshipApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

func (r *internshipRepository) ListApplicationsForStudent(ctx context.Context, studentID uint) ([]models.InternshipApplication, error) {
	var applications []models.InternshipApplication
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *internshipRepository) ListApplicationsForInternship(ctx context.Context, internshipID uint) ([]models.InternshipApplication, error) {
	var applications []models.InternshipApplication
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}
