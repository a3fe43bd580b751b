package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// ProfileRepository defines persistence for the role-specific profile tables.
type ProfileRepository interface {
	GetStudent(ctx context.Context, userID uint) (models.StudentProfile, error)
	SaveStudent(ctx context.Context, profile *models.StudentProfile) error
	GetFaculty(ctx context.Context, userID uint) (models.FacultyProfile, error)
	SaveFaculty(ctx context.Context, profile *models.FacultyProfile) error
	GetRecruiter(ctx context.Context, userID uint) (models.RecruiterProfile, error)
	SaveRecruiter(ctx context.Context, profile *models.RecruiterProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository instantiates a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetStudent(ctx context.Context, userID uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}
	return profile, nil
}

func (r *profileRepository) SaveStudent(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) GetFaculty(ctx context.Context, userID uint) (models.FacultyProfile, error) {
	var profile models.FacultyProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.FacultyProfile{}, err
	}
	return profile, nil
}

func (r *profileRepository) SaveFaculty(ctx context.Context, profile *models.FacultyProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) GetRecruiter(ctx context.Context, userID uint) (models.RecruiterProfile, error) {
	var profile models.RecruiterProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.RecruiterProfile{}, err
	}
	return profile, nil
}

func (r *profileRepository) SaveRecruiter(ctx context.Context, profile *models.RecruiterProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
