package ai

import "context"

// GeneratedQuestion is one interview question produced by the model.
type GeneratedQuestion struct {
	Question             string   `json:"question"`
	ExpectedAnswerPoints []string `json:"expectedAnswerPoints"`
	Difficulty           string   `json:"difficulty"`
	Category             string   `json:"category"`
}

// AnswerInput contains the artefacts needed to score a single answer.
type AnswerInput struct {
	Question       string
	Answer         string
	JobRole        string
	ExpectedPoints []string
}

// AnswerScore is the structured verdict for a single answer.
type AnswerScore struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// ScoredAnswer pairs a question/answer with its per-answer score and category.
type ScoredAnswer struct {
	Question string
	Answer   string
	Score    int
	Category string
}

// Evaluation is the model's aggregate view of a full interview. Score fields
// are nil when the model declined to provide them; callers apply their own
// fallbacks and clamping.
type Evaluation struct {
	CommunicationScore *int
	TechnicalScore     *int
	ConfidenceScore    *int
	OverallScore       *int
	Feedback           string
	Strengths          []string
	Improvements       []string
}

// FeedbackInput contains everything needed for the final prose report.
type FeedbackInput struct {
	CandidateName      string
	JobRole            string
	CommunicationScore int
	TechnicalScore     int
	ConfidenceScore    int
	OverallScore       int
	Strengths          []string
	Improvements       []string
	Answers            []ScoredAnswer
}

// Interviewer describes a language model capable of running a mock interview:
// generating questions, scoring answers and producing aggregate feedback.
// Every call is idempotent and side-effect free against session state.
type Interviewer interface {
	GenerateQuestions(ctx context.Context, jobRole, difficulty string, count int) ([]GeneratedQuestion, error)
	ScoreAnswer(ctx context.Context, input AnswerInput) (AnswerScore, error)
	AggregateEvaluation(ctx context.Context, jobRole string, answers []ScoredAnswer) (Evaluation, error)
	PersonalizedFeedback(ctx context.Context, input FeedbackInput) (string, error)
}
