package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Interview session lifecycle states. A session leaves in_progress exactly once.
const (
	InterviewStatusInProgress = "in_progress"
	InterviewStatusCompleted  = "completed"
	InterviewStatusCancelled  = "cancelled"
)

// Question difficulty levels passed through to question generation.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question categories assigned at generation time and used for sub-scores.
const (
	CategoryTechnical   = "technical"
	CategoryBehavioral  = "behavioral"
	CategorySituational = "situational"
)

// ValidDifficulty reports whether the given difficulty is one of the three levels.
func ValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionRecord is one entry of a session's ordered question list. The
// question text, category and expected points are fixed at generation time;
// answer and time spent are written when the student submits.
type QuestionRecord struct {
	Question       string   `json:"question"`
	Category       string   `json:"category"`
	ExpectedPoints []string `json:"expectedPoints,omitempty"`
	Answer         string   `json:"answer"`
	TimeSpent      int      `json:"timeSpent"`
}

// Answered reports whether the student submitted a non-empty answer.
func (q QuestionRecord) Answered() bool {
	return q.Answer != ""
}

// InterviewSession is one mock interview taken by a student. The question
// list is stored as a JSON column; its length is fixed at creation and
// indices are stable for the session's lifetime.
type InterviewSession struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	StudentID          uint           `gorm:"index;not null" json:"student_id"`
	JobRole            string         `gorm:"size:255;not null" json:"job_role"`
	Difficulty         string         `gorm:"size:16;not null" json:"difficulty"`
	Questions          datatypes.JSON `gorm:"type:json" json:"questions"`
	OverallScore       *int           `json:"overall_score"`
	CommunicationScore *int           `json:"communication_score"`
	TechnicalScore     *int           `json:"technical_score"`
	ConfidenceScore    *int           `json:"confidence_score"`
	Feedback           string         `gorm:"type:text" json:"feedback"`
	Duration           *int           `json:"duration"`
	Status             string         `gorm:"size:16;not null;default:in_progress" json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	CompletedAt        *time.Time     `json:"completed_at"`
}

// QuestionRecords decodes the stored question list.
func (s InterviewSession) QuestionRecords() ([]QuestionRecord, error) {
	if len(s.Questions) == 0 {
		return nil, nil
	}

	var records []QuestionRecord
	if err := json.Unmarshal(s.Questions, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetQuestionRecords encodes and replaces the stored question list.
func (s *InterviewSession) SetQuestionRecords(records []QuestionRecord) error {
	encoded, err := json.Marshal(records)
	if err != nil {
		return err
	}
	s.Questions = datatypes.JSON(encoded)
	return nil
}

// Terminal reports whether the session has left the in_progress state.
func (s InterviewSession) Terminal() bool {
	return s.Status == InterviewStatusCompleted || s.Status == InterviewStatusCancelled
}
