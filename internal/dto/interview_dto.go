package dto

import (
	"time"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// InterviewStartRequest begins a mock interview session.
type InterviewStartRequest struct {
	JobRole    string `json:"jobRole" validate:"required,min=2,max=255"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// InterviewAnswerRequest submits an answer for one question.
type InterviewAnswerRequest struct {
	QuestionIndex *int   `json:"questionIndex" validate:"required,gte=0"`
	Answer        string `json:"answer" validate:"required"`
	TimeSpent     int    `json:"timeSpent" validate:"gte=0"`
}

// InterviewQuestionResponse is one entry of the session's question list.
// Expected answer points are kept server-side and never exposed here so the
// client cannot show them to the candidate mid-interview.
type InterviewQuestionResponse struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	Answer    string `json:"answer"`
	TimeSpent int    `json:"timeSpent"`
}

// InterviewSessionResponse is the full client view of a session.
type InterviewSessionResponse struct {
	ID                 uint                        `json:"id"`
	StudentID          uint                        `json:"studentId"`
	JobRole            string                      `json:"jobRole"`
	Difficulty         string                      `json:"difficulty"`
	Questions          []InterviewQuestionResponse `json:"questions"`
	OverallScore       *int                        `json:"overallScore"`
	CommunicationScore *int                        `json:"communicationScore"`
	TechnicalScore     *int                        `json:"technicalScore"`
	ConfidenceScore    *int                        `json:"confidenceScore"`
	Feedback           string                      `json:"feedback"`
	Duration           *int                        `json:"duration"`
	Status             string                      `json:"status"`
	CreatedAt          time.Time                   `json:"createdAt"`
	CompletedAt        *time.Time                  `json:"completedAt"`
}

// NewInterviewSessionResponse converts an InterviewSession model into a DTO.
func NewInterviewSessionResponse(model models.InterviewSession) (InterviewSessionResponse, error) {
	records, err := model.QuestionRecords()
	if err != nil {
		return InterviewSessionResponse{}, err
	}

	questions := make([]InterviewQuestionResponse, 0, len(records))
	for _, record := range records {
		questions = append(questions, InterviewQuestionResponse{
			Question:  record.Question,
			Category:  record.Category,
			Answer:    record.Answer,
			TimeSpent: record.TimeSpent,
		})
	}

	return InterviewSessionResponse{
		ID:                 model.ID,
		StudentID:          model.StudentID,
		JobRole:            model.JobRole,
		Difficulty:         model.Difficulty,
		Questions:          questions,
		OverallScore:       model.OverallScore,
		CommunicationScore: model.CommunicationScore,
		TechnicalScore:     model.TechnicalScore,
		ConfidenceScore:    model.ConfidenceScore,
		Feedback:           model.Feedback,
		Duration:           model.Duration,
		Status:             model.Status,
		CreatedAt:          model.CreatedAt,
		CompletedAt:        model.CompletedAt,
	}, nil
}

// NewInterviewSessionResponseSlice converts a slice of sessions.
func NewInterviewSessionResponseSlice(sessions []models.InterviewSession) ([]InterviewSessionResponse, error) {
	responses := make([]InterviewSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response, err := NewInterviewSessionResponse(session)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}
