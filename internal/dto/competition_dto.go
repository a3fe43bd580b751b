package dto

import (
	"time"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// CompetitionCreateRequest is the faculty payload for creating a competition.
type CompetitionCreateRequest struct {
	Title                string   `json:"title" validate:"required,min=3,max=255"`
	Description          string   `json:"description" validate:"omitempty"`
	Type                 string   `json:"type" validate:"omitempty,oneof=hackathon competition contest"`
	Category             string   `json:"category" validate:"omitempty,max=128"`
	Duration             string   `json:"duration" validate:"omitempty,max=64"`
	StartDate            *string  `json:"start_date" validate:"omitempty"`
	EndDate              *string  `json:"end_date" validate:"omitempty"`
	RegistrationDeadline *string  `json:"registration_deadline" validate:"omitempty"`
	ImageURL             string   `json:"image_url" validate:"omitempty,url"`
	Prizes               []string `json:"prizes" validate:"omitempty,dive,min=1"`
	Rules                string   `json:"rules" validate:"omitempty"`
}

// CompetitionResponse is the public view of a competition.
type CompetitionResponse struct {
	ID                   uint       `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Type                 string     `json:"type"`
	Category             string     `json:"category"`
	Duration             string     `json:"duration"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	ImageURL             string     `json:"image_url"`
	Prizes               []string   `json:"prizes"`
	Rules                string     `json:"rules"`
	IsActive             bool       `json:"is_active"`
	OrganizedBy          uint       `json:"organized_by"`
	CreatedAt            time.Time  `json:"created_at"`
}

// CompetitionRegisterRequest is the student payload for registering.
type CompetitionRegisterRequest struct {
	TeamName    string   `json:"team_name" validate:"omitempty,max=255"`
	TeamMembers []string `json:"team_members" validate:"omitempty,dive,min=1"`
}

// RegistrationResponse describes a student's registration.
type RegistrationResponse struct {
	ID            uint            `json:"id"`
	CompetitionID uint            `json:"competition_id"`
	StudentID     uint            `json:"student_id"`
	TeamName      string          `json:"team_name"`
	TeamMembers   []string        `json:"team_members"`
	RegisteredAt  time.Time       `json:"registered_at"`
	Competition   CompetitionLite `json:"competition"`
}

// CompetitionLite summarizes a competition inside registration responses.
type CompetitionLite struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// NewCompetitionResponse converts a Competition model into a DTO.
func NewCompetitionResponse(model models.Competition) CompetitionResponse {
	return CompetitionResponse{
		ID:                   model.ID,
		Title:                model.Title,
		Description:          model.Description,
		Type:                 model.Type,
		Category:             model.Category,
		Duration:             model.Duration,
		StartDate:            model.StartDate,
		EndDate:              model.EndDate,
		RegistrationDeadline: model.RegistrationDeadline,
		ImageURL:             model.ImageURL,
		Prizes:               stringSliceFromJSON(model.Prizes),
		Rules:                model.Rules,
		IsActive:             model.IsActive,
		OrganizedBy:          model.OrganizedBy,
		CreatedAt:            model.CreatedAt,
	}
}

// NewCompetitionResponseSlice converts a slice of Competition models.
func NewCompetitionResponseSlice(competitions []models.Competition) []CompetitionResponse {
	responses := make([]CompetitionResponse, 0, len(competitions))
	for _, competition := range competitions {
		responses = append(responses, NewCompetitionResponse(competition))
	}
	return responses
}

// NewRegistrationResponse converts a CompetitionRegistration model into a DTO.
func NewRegistrationResponse(model models.CompetitionRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:            model.ID,
		CompetitionID: model.CompetitionID,
		StudentID:     model.StudentID,
		TeamName:      model.TeamName,
		TeamMembers:   stringSliceFromJSON(model.TeamMembers),
		RegisteredAt:  model.RegisteredAt,
		Competition: CompetitionLite{
			ID:       model.Competition.ID,
			Title:    model.Competition.Title,
			Type:     model.Competition.Type,
			Category: model.Competition.Category,
		},
	}
}

// NewRegistrationResponseSlice converts a slice of registrations.
func NewRegistrationResponseSlice(registrations []models.CompetitionRegistration) []RegistrationResponse {
	responses := make([]RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		responses = append(responses, NewRegistrationResponse(registration))
	}
	return responses
}
