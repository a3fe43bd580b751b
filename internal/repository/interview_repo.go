package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// InterviewRepository defines persistence operations for interview sessions.
type InterviewRepository interface {
	Create(ctx context.Context, session *models.InterviewSession) error
	GetByID(ctx context.Context, id uint) (models.InterviewSession, error)
	Save(ctx context.Context, session *models.InterviewSession) error
	ListForStudent(ctx context.Context, studentID uint) ([]models.InterviewSession, error)
}

type interviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository instantiates a GORM-backed repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *interviewRepository) GetByID(ctx context.Context, id uint) (models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return models.InterviewSession{}, err
	}
	return session, nil
}

func (r *interviewRepository) Save(ctx context.Context, session *models.InterviewSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *interviewRepository) ListForStudent(ctx context.Context, studentID uint) ([]models.InterviewSession, error) {
	var sessions []models.InterviewSession
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
