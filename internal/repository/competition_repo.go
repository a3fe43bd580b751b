package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// CompetitionRepository defines persistence operations for competitions and registrations.
type CompetitionRepository interface {
	List(ctx context.Context) ([]models.Competition, error)
	GetByID(ctx context.Context, id uint) (models.Competition, error)
	Create(ctx context.Context, competition *models.Competition) error
	CreateRegistration(ctx context.Context, registration *models.CompetitionRegistration) error
	GetRegistration(ctx context.Context, competitionID, studentID uint) (models.CompetitionRegistration, error)
	ListRegistrationsForStudent(ctx context.Context, studentID uint) ([]models.CompetitionRegistration, error)
}

type competitionRepository struct {
	db *gorm.DB
}

// NewCompetitionRepository instantiates a GORM-backed repository.
func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) List(ctx context.Context) ([]models.Competition, error) {
	var competitions []models.Competition
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&competitions).Error; err != nil {
		return nil, err
	}
	return competitions, nil
}

func (r *competitionRepository) GetByID(ctx context.Context, id uint) (models.Competition, error) {
	var competition models.Competition
	if err := r.db.WithContext(ctx).First(&competition, id).Error; err != nil {
		return models.Competition{}, err
	}
	return competition, nil
}

func (r *competitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	return r.db.WithContext(ctx).Create(competition).Error
}

func (r *competitionRepository) CreateRegistration(ctx context.Context, registration *models.CompetitionRegistration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *competitionRepository) GetRegistration(ctx context.Context, competitionID, studentID uint) (models.CompetitionRegistration, error) {
	var registration models.CompetitionRegistration
	err := r.db.WithContext(ctx).
		Where("competition_id = ? AND student_id = ?", competitionID, studentID).
		First(&registration).Error
	if err != nil {
		return models.CompetitionRegistration{}, err
	}
	return registration, nil
}

func (r *competitionRepository) ListRegistrationsForStudent(ctx context.Context, studentID uint) ([]models.CompetitionRegistration, error) {
	var registrations []models.CompetitionRegistration
	err := r.db.WithContext(ctx).
		Preload("Competition").
		Where("student_id = ?", studentID).
		Order("registered_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}
