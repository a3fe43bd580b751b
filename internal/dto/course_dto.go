package dto

import (
	"time"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// CourseCreateRequest is the faculty payload for creating a course.
type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description string  `json:"description" validate:"omitempty"`
	Category    string  `json:"category" validate:"omitempty,max=128"`
	Level       string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration    string  `json:"duration" validate:"omitempty,max=64"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"omitempty,gte=0"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// EnrollmentResponse describes a student's enrollment in a course.
type EnrollmentResponse struct {
	ID          uint       `json:"id"`
	CourseID    uint       `json:"course_id"`
	StudentID   uint       `json:"student_id"`
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completed_at"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	Course      CourseLite `json:"course"`
}

// CourseLite summarizes a course inside enrollment responses.
type CourseLite struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

// ProgressUpdateRequest updates enrollment progress.
type ProgressUpdateRequest struct {
	Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Category:    model.Category,
		Level:       model.Level,
		Duration:    model.Duration,
		ImageURL:    model.ImageURL,
		Rating:      model.Rating,
		Price:       model.Price,
		IsActive:    model.IsActive,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
	}
}

// NewCourseResponseSlice converts a slice of Course models.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}

// NewEnrollmentResponse converts a CourseEnrollment model into a DTO.
func NewEnrollmentResponse(model models.CourseEnrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          model.ID,
		CourseID:    model.CourseID,
		StudentID:   model.StudentID,
		Progress:    model.Progress,
		CompletedAt: model.CompletedAt,
		EnrolledAt:  model.EnrolledAt,
		Course: CourseLite{
			ID:       model.Course.ID,
			Title:    model.Course.Title,
			Category: model.Course.Category,
			Level:    model.Course.Level,
		},
	}
}

// NewEnrollmentResponseSlice converts a slice of enrollments.
func NewEnrollmentResponseSlice(enrollments []models.CourseEnrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewEnrollmentResponse(enrollment))
	}
	return responses
}
