package dto

import (
	"encoding/json"
	"time"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// InternshipCreateRequest is the recruiter payload for creating a posting.
type InternshipCreateRequest struct {
	Title               string   `json:"title" validate:"required,min=3,max=255"`
	Description         string   `json:"description" validate:"omitempty"`
	Company             string   `json:"company" validate:"required,min=1,max=255"`
	Location            string   `json:"location" validate:"omitempty,max=255"`
	Type                string   `json:"type" validate:"omitempty,oneof=internship job part-time"`
	Duration            string   `json:"duration" validate:"omitempty,max=64"`
	Salary              string   `json:"salary" validate:"omitempty,max=128"`
	Requirements        []string `json:"requirements" validate:"omitempty,dive,min=1"`
	Skills              []string `json:"skills" validate:"omitempty,dive,min=1"`
	IsRemote            bool     `json:"is_remote"`
	ApplicationDeadline *string  `json:"application_deadline" validate:"omitempty"`
}

// InternshipResponse is the public view of a posting.
type InternshipResponse struct {
	ID                  uint       `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Company             string     `json:"company"`
	Location            string     `json:"location"`
	Type                string     `json:"type"`
	Duration            string     `json:"duration"`
	Salary              string     `json:"salary"`
	Requirements        []string   `json:"requirements"`
	Skills              []string   `json:"skills"`
	IsRemote            bool       `json:"is_remote"`
	IsActive            bool       `json:"is_active"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	PostedBy            uint       `json:"posted_by"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ApplyRequest is the student payload for applying to a posting.
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=10000"`
}

// ApplicationStatusUpdateRequest moves an application through review states.
type ApplicationStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shortlisted rejected hired"`
}

// ApplicationResponse describes a student's application.
type ApplicationResponse struct {
	ID           uint           `json:"id"`
	InternshipID uint           `json:"internship_id"`
	StudentID    uint           `json:"student_id"`
	Status       string         `json:"status"`
	CoverLetter  string         `json:"cover_letter"`
	AppliedAt    time.Time      `json:"applied_at"`
	Internship   InternshipLite `json:"internship"`
}

// InternshipLite summarizes a posting inside application responses.
type InternshipLite struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Type    string `json:"type"`
}

// NewInternshipResponse converts an Internship model into a DTO.
func NewInternshipResponse(model models.Internship) InternshipResponse {
	return InternshipResponse{
		ID:                  model.ID,
		Title:               model.Title,
		Description:         model.Description,
		Company:             model.Company,
		Location:            model.Location,
		Type:                model.Type,
		Duration:            model.Duration,
		Salary:              model.Salary,
		Requirements:        stringSliceFromJSON(model.Requirements),
		Skills:              stringSliceFromJSON(model.Skills),
		IsRemote:            model.IsRemote,
		IsActive:            model.IsActive,
		ApplicationDeadline: model.ApplicationDeadline,
		PostedBy:            model.PostedBy,
		CreatedAt:           model.CreatedAt,
	}
}

// NewInternshipResponseSlice converts a slice of Internship models.
func NewInternshipResponseSlice(internships []models.Internship) []InternshipResponse {
	responses := make([]InternshipResponse, 0, len(internships))
	for _, internship := range internships {
		responses = append(responses, NewInternshipResponse(internship))
	}
	return responses
}

// NewApplicationResponse converts an InternshipApplication model into a DTO.
func NewApplicationResponse(model models.InternshipApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:           model.ID,
		InternshipID: model.InternshipID,
		StudentID:    model.StudentID,
		Status:       model.Status,
		CoverLetter:  model.CoverLetter,
		AppliedAt:    model.AppliedAt,
		Internship: InternshipLite{
			ID:      model.Internship.ID,
			Title:   model.Internship.Title,
			Company: model.Internship.Company,
			Type:    model.Internship.Type,
		},
	}
}

// NewApplicationResponseSlice converts a slice of applications.
func NewApplicationResponseSlice(applications []models.InternshipApplication) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, NewApplicationResponse(application))
	}
	return responses
}

func stringSliceFromJSON(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return []string{}
	}
	return values
}
