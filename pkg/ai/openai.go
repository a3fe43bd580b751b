package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skillquestify",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of language model requests",
	}, []string{"operation", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillquestify",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed language model requests",
	}, []string{"operation", "model"})
)

// questionPayloadSchema constrains the shape of the question-generation
// response before decoding; the model's output is not trusted blindly.
const questionPayloadSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "category"],
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"expectedAnswerPoints": {"type": "array", "items": {"type": "string"}},
					"difficulty": {"type": "string"},
					"category": {"type": "string"}
				}
			}
		}
	}
}`

var questionSchema = jsonschema.MustCompileString("questions.json", questionPayloadSchema)

// OpenAIConfig defines configuration options for the OpenAI interviewer.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIInterviewer implements Interviewer against the OpenAI chat completion API.
type OpenAIInterviewer struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIInterviewer builds a new interviewer using the provided configuration.
func NewOpenAIInterviewer(cfg OpenAIConfig) (*OpenAIInterviewer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	tracer := otel.Tracer("github.com/acharyaskillx/skillquestify-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIInterviewer{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With().Str("component", "openai_interviewer").Logger(),
	}, nil
}

// GenerateQuestions asks the model for role and difficulty specific questions.
func (i *OpenAIInterviewer) GenerateQuestions(parent context.Context, jobRole, difficulty string, count int) ([]GeneratedQuestion, error) {
	const operation = "generate_questions"

	prompt := fmt.Sprintf(
		"Generate %d interview questions for a %s position with %s difficulty level. "+
			"Include a mix of technical, behavioral, and situational questions appropriate for the role.\n\n"+
			"For each question provide the question text, key points a good answer should cover, "+
			"the difficulty level, and the category (technical/behavioral/situational).\n\n"+
			"Respond with a JSON object {\"questions\": [...]} where each entry has fields "+
			"question, expectedAnswerPoints, difficulty, category.",
		count, jobRole, difficulty,
	)

	content, err := i.complete(parent, operation, jsonResponse,
		"You are an expert technical interviewer who creates comprehensive, role-specific interview questions. Respond only with valid JSON.",
		prompt,
	)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		return nil, fmt.Errorf("decode question payload: %w", err)
	}
	if err := questionSchema.Validate(raw); err != nil {
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		return nil, fmt.Errorf("question payload failed schema validation: %w", err)
	}

	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		return nil, fmt.Errorf("parse question payload: %w", err)
	}

	return payload.Questions, nil
}

// ScoreAnswer asks the model to grade a single answer against the question and role.
func (i *OpenAIInterviewer) ScoreAnswer(parent context.Context, input AnswerInput) (AnswerScore, error) {
	const operation = "score_answer"

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Evaluate this interview answer for a %s position:\n\n", input.JobRole)
	fmt.Fprintf(&builder, "Question: %s\n", input.Question)
	fmt.Fprintf(&builder, "Answer: %s\n", input.Answer)
	if len(input.ExpectedPoints) > 0 {
		fmt.Fprintf(&builder, "Expected key points: %s\n", strings.Join(input.ExpectedPoints, ", "))
	}
	builder.WriteString("\nConsider technical accuracy, communication clarity, structure, and completeness.\nRespond with JSON.")

	content, err := i.complete(parent, operation, jsonResponse,
		"You are an expert interview evaluator. Provide constructive, detailed feedback in JSON format with fields: score (0-100), feedback, strengths (array), improvements (array).",
		builder.String(),
	)
	if err != nil {
		return AnswerScore{}, err
	}

	var payload AnswerScore
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		return AnswerScore{}, fmt.Errorf("parse answer score: %w", err)
	}

	payload.Score = ClampScore(payload.Score)
	if payload.Feedback == "" {
		payload.Feedback = "No feedback available"
	}

	return payload, nil
}

// AggregateEvaluation asks the model for refined headline scores across the interview.
func (i *OpenAIInterviewer) AggregateEvaluation(parent context.Context, jobRole string, answers []ScoredAnswer) (Evaluation, error) {
	const operation = "aggregate_evaluation"

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Provide a comprehensive interview evaluation for a %s candidate based on their performance:\n\n", jobRole)
	for index, answer := range answers {
		fmt.Fprintf(&builder, "%d. [%s] %s\nAnswer Score: %d/100\n\n", index+1, answer.Category, answer.Question, answer.Score)
	}
	builder.WriteString("Provide a communication score (clarity, articulation, structure), a technical score, " +
		"a confidence score, an overall score, summary feedback, key strengths, and priority improvements.\n" +
		"Respond in JSON with numeric 0-100 scores.")

	content, err := i.complete(parent, operation, jsonResponse,
		"You are a senior interview evaluator providing comprehensive candidate assessments. Respond with JSON containing: communicationScore, technicalScore, confidenceScore, overallScore, feedback, strengths (array), improvements (array).",
		builder.String(),
	)
	if err != nil {
		return Evaluation{}, err
	}

	var payload struct {
		CommunicationScore *int     `json:"communicationScore"`
		TechnicalScore     *int     `json:"technicalScore"`
		ConfidenceScore    *int     `json:"confidenceScore"`
		OverallScore       *int     `json:"overallScore"`
		Feedback           string   `json:"feedback"`
		Strengths          []string `json:"strengths"`
		Improvements       []string `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		return Evaluation{}, fmt.Errorf("parse aggregate evaluation: %w", err)
	}

	return Evaluation{
		CommunicationScore: clampScorePtr(payload.CommunicationScore),
		TechnicalScore:     clampScorePtr(payload.TechnicalScore),
		ConfidenceScore:    clampScorePtr(payload.ConfidenceScore),
		OverallScore:       clampScorePtr(payload.OverallScore),
		Feedback:           payload.Feedback,
		Strengths:          payload.Strengths,
		Improvements:       payload.Improvements,
	}, nil
}

// PersonalizedFeedback asks the model for a prose report addressed to the candidate.
func (i *OpenAIInterviewer) PersonalizedFeedback(parent context.Context, input FeedbackInput) (string, error) {
	const operation = "personalized_feedback"

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Generate a personalized interview feedback report for %s who interviewed for a %s position.\n\n", input.CandidateName, input.JobRole)
	builder.WriteString("Performance Summary:\n")
	fmt.Fprintf(&builder, "- Communication: %d/100\n", input.CommunicationScore)
	fmt.Fprintf(&builder, "- Technical: %d/100\n", input.TechnicalScore)
	fmt.Fprintf(&builder, "- Confidence: %d/100\n", input.ConfidenceScore)
	fmt.Fprintf(&builder, "- Overall: %d/100\n\n", input.OverallScore)
	if len(input.Strengths) > 0 {
		fmt.Fprintf(&builder, "Strengths: %s\n", strings.Join(input.Strengths, ", "))
	}
	if len(input.Improvements) > 0 {
		fmt.Fprintf(&builder, "Areas for Improvement: %s\n", strings.Join(input.Improvements, ", "))
	}
	builder.WriteString("\nCreate a professional, encouraging feedback report that starts with positive highlights, " +
		"references their answers, offers constructive suggestions, and ends with encouraging next steps.")

	content, err := i.complete(parent, operation, textResponse,
		"You are a professional HR consultant creating detailed, constructive interview feedback reports. Write in a professional yet encouraging tone.",
		builder.String(),
	)
	if err != nil {
		return "", err
	}

	if content == "" {
		return "Feedback report could not be generated.", nil
	}
	return content, nil
}

type responseMode int

const (
	jsonResponse responseMode = iota
	textResponse
)

func (i *OpenAIInterviewer) complete(parent context.Context, operation string, mode responseMode, system, user string) (string, error) {
	ctx, span := i.tracer.Start(parent, "openai."+operation, trace.WithAttributes(
		attribute.String("model", i.cfg.Model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       i.cfg.Model,
		MaxTokens:   i.cfg.MaxTokens,
		Temperature: i.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if mode == jsonResponse {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	start := time.Now()
	resp, err := i.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(operation, i.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(operation, i.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ClampScore restricts a score to the closed interval [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampScorePtr(score *int) *int {
	if score == nil {
		return nil
	}
	clamped := ClampScore(*score)
	return &clamped
}
