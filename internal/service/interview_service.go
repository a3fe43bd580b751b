package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
	"github.com/acharyaskillx/skillquestify-api/pkg/ai"
)

var (
	// ErrSessionNotFound indicates the requested interview session does not exist.
	ErrSessionNotFound = errors.New("interview session not found")
	// ErrSessionForbidden indicates the caller does not own the session.
	ErrSessionForbidden = errors.New("interview session belongs to another student")
	// ErrSessionNotActive indicates the session already left the in_progress state.
	ErrSessionNotActive = errors.New("interview session is no longer in progress")
	// ErrQuestionNotFound indicates the question index is out of range.
	ErrQuestionNotFound = errors.New("question index out of range")
	// ErrExternalService indicates a language model request failed.
	ErrExternalService = errors.New("language model request failed")
)

// EventPublisher emits domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// InterviewService drives a mock interview session through its lifecycle.
type InterviewService interface {
	Start(ctx context.Context, studentID uint, payload dto.InterviewStartRequest) (dto.InterviewSessionResponse, error)
	RecordAnswer(ctx context.Context, sessionID, studentID uint, payload dto.InterviewAnswerRequest) (dto.InterviewSessionResponse, error)
	Complete(ctx context.Context, sessionID, studentID uint) (dto.InterviewSessionResponse, error)
	Cancel(ctx context.Context, sessionID, studentID uint) (dto.InterviewSessionResponse, error)
	Get(ctx context.Context, sessionID, studentID uint) (dto.InterviewSessionResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.InterviewSessionResponse, error)
}

type interviewService struct {
	repo          repository.InterviewRepository
	users         repository.UserRepository
	interviewer   ai.Interviewer
	events        EventPublisher
	validator     *validator.Validate
	logger        zerolog.Logger
	questionCount int
	now           func() time.Time
}

// NewInterviewService builds the interview orchestrator. The interviewer and
// repositories are injected so tests can substitute in-memory fakes.
func NewInterviewService(
	repo repository.InterviewRepository,
	users repository.UserRepository,
	interviewer ai.Interviewer,
	events EventPublisher,
	validate *validator.Validate,
	questionCount int,
	logger zerolog.Logger,
) InterviewService {
	if questionCount <= 0 {
		questionCount = 5
	}
	return &interviewService{
		repo:          repo,
		users:         users,
		interviewer:   interviewer,
		events:        events,
		validator:     validate,
		logger:        logger.With().Str("component", "interview_service").Logger(),
		questionCount: questionCount,
		now:           time.Now,
	}
}

func (s *interviewService) Start(ctx context.Context, studentID uint, payload dto.InterviewStartRequest) (dto.InterviewSessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	difficulty := payload.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	generated, err := s.interviewer.GenerateQuestions(ctx, payload.JobRole, difficulty, s.questionCount)
	if err != nil {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if len(generated) == 0 {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: no questions generated", ErrExternalService)
	}

	records := make([]models.QuestionRecord, 0, len(generated))
	for _, question := range generated {
		category := question.Category
		switch category {
		case models.CategoryTechnical, models.CategoryBehavioral, models.CategorySituational:
		default:
			category = models.CategoryTechnical
		}
		records = append(records, models.QuestionRecord{
			Question:       question.Question,
			Category:       category,
			ExpectedPoints: question.ExpectedAnswerPoints,
		})
	}

	session := models.InterviewSession{
		StudentID:  studentID,
		JobRole:    payload.JobRole,
		Difficulty: difficulty,
		Status:     models.InterviewStatusInProgress,
	}
	if err := session.SetQuestionRecords(records); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if err := s.repo.Create(ctx, &session); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	s.logger.Info().
		Uint("session_id", session.ID).
		Uint("student_id", studentID).
		Str("job_role", payload.JobRole).
		Str("difficulty", difficulty).
		Int("questions", len(records)).
		Msg("interview session started")

	return dto.NewInterviewSessionResponse(session)
}

func (s *interviewService) RecordAnswer(ctx context.Context, sessionID, studentID uint, payload dto.InterviewAnswerRequest) (dto.InterviewSessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	session, err := s.ownedSession(ctx, sessionID, studentID)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if session.Terminal() {
		return dto.InterviewSessionResponse{}, ErrSessionNotActive
	}

	records, err := session.QuestionRecords()
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	index := *payload.QuestionIndex
	if index < 0 || index >= len(records) {
		return dto.InterviewSessionResponse{}, ErrQuestionNotFound
	}

	records[index].Answer = payload.Answer
	records[index].TimeSpent = payload.TimeSpent
	if err := session.SetQuestionRecords(records); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	return dto.NewInterviewSessionResponse(session)
}

func (s *interviewService) Complete(ctx context.Context, sessionID, studentID uint) (dto.InterviewSessionResponse, error) {
	session, err := s.ownedSession(ctx, sessionID, studentID)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if session.Terminal() {
		return dto.InterviewSessionResponse{}, ErrSessionNotActive
	}

	records, err := session.QuestionRecords()
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	// Score each answered question independently. Any failure aborts the
	// whole completion and the session stays in_progress untouched.
	scored := make([]ai.ScoredAnswer, 0, len(records))
	for _, record := range records {
		if !record.Answered() {
			continue
		}
		verdict, err := s.interviewer.ScoreAnswer(ctx, ai.AnswerInput{
			Question:       record.Question,
			Answer:         record.Answer,
			JobRole:        session.JobRole,
			ExpectedPoints: record.ExpectedPoints,
		})
		if err != nil {
			return dto.InterviewSessionResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
		}
		scored = append(scored, ai.ScoredAnswer{
			Question: record.Question,
			Answer:   record.Answer,
			Score:    verdict.Score,
			Category: record.Category,
		})
	}

	evaluation, err := s.interviewer.AggregateEvaluation(ctx, session.JobRole, scored)
	if err != nil {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	scores := resolveScores(scored, evaluation)

	candidateName := "Candidate"
	if user, err := s.users.GetByID(ctx, studentID); err == nil {
		candidateName = user.DisplayName()
	}

	strengths := evaluation.Strengths
	if len(strengths) == 0 {
		strengths = []string{"Completed all interview questions"}
	}
	improvements := evaluation.Improvements
	if len(improvements) == 0 {
		improvements = []string{"Continue practicing interview skills"}
	}

	feedback, err := s.interviewer.PersonalizedFeedback(ctx, ai.FeedbackInput{
		CandidateName:      candidateName,
		JobRole:            session.JobRole,
		CommunicationScore: scores.communication,
		TechnicalScore:     scores.technical,
		ConfidenceScore:    scores.confidence,
		OverallScore:       scores.overall,
		Strengths:          strengths,
		Improvements:       improvements,
		Answers:            scored,
	})
	if err != nil {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	now := s.now()
	duration := int(now.Sub(session.CreatedAt).Minutes())
	if duration < 0 {
		duration = 0
	}

	session.Status = models.InterviewStatusCompleted
	session.OverallScore = &scores.overall
	session.CommunicationScore = &scores.communication
	session.TechnicalScore = &scores.technical
	session.ConfidenceScore = &scores.confidence
	session.Feedback = feedback
	session.Duration = &duration
	session.CompletedAt = &now

	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	s.publish(ctx, "interview.completed", map[string]interface{}{
		"session_id":    session.ID,
		"student_id":    session.StudentID,
		"job_role":      session.JobRole,
		"overall_score": scores.overall,
	})

	s.logger.Info().
		Uint("session_id", session.ID).
		Int("answered", len(scored)).
		Int("overall_score", scores.overall).
		Msg("interview session completed")

	return dto.NewInterviewSessionResponse(session)
}

func (s *interviewService) Cancel(ctx context.Context, sessionID, studentID uint) (dto.InterviewSessionResponse, error) {
	session, err := s.ownedSession(ctx, sessionID, studentID)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if session.Terminal() {
		return dto.InterviewSessionResponse{}, ErrSessionNotActive
	}

	session.Status = models.InterviewStatusCancelled
	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	s.logger.Info().Uint("session_id", session.ID).Msg("interview session cancelled")

	return dto.NewInterviewSessionResponse(session)
}

func (s *interviewService) Get(ctx context.Context, sessionID, studentID uint) (dto.InterviewSessionResponse, error) {
	session, err := s.ownedSession(ctx, sessionID, studentID)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}
	return dto.NewInterviewSessionResponse(session)
}

func (s *interviewService) ListForStudent(ctx context.Context, studentID uint) ([]dto.InterviewSessionResponse, error) {
	sessions, err := s.repo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewInterviewSessionResponseSlice(sessions)
}

func (s *interviewService) ownedSession(ctx context.Context, sessionID, studentID uint) (models.InterviewSession, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InterviewSession{}, ErrSessionNotFound
		}
		return models.InterviewSession{}, err
	}
	if session.StudentID != studentID {
		return models.InterviewSession{}, ErrSessionForbidden
	}
	return session, nil
}

func (s *interviewService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}

type headlineScores struct {
	overall       int
	communication int
	technical     int
	confidence    int
}

// resolveScores aggregates per-question verdicts into the four headline
// scores. The overall score is always the unweighted mean of all answered
// questions; the category scores prefer the model's refined values and fall
// back to the local category means; confidence falls back to 0.9x overall.
func resolveScores(scored []ai.ScoredAnswer, evaluation ai.Evaluation) headlineScores {
	technicalMean := categoryMean(scored, models.CategoryTechnical)
	behavioralMean := categoryMean(scored, models.CategoryBehavioral)

	overall := 0.0
	if len(scored) > 0 {
		sum := 0
		for _, answer := range scored {
			sum += answer.Score
		}
		overall = float64(sum) / float64(len(scored))
	}

	scores := headlineScores{
		overall:       ai.ClampScore(roundScore(overall)),
		technical:     ai.ClampScore(roundScore(technicalMean)),
		communication: ai.ClampScore(roundScore(behavioralMean)),
		confidence:    ai.ClampScore(roundScore(overall * 0.9)),
	}

	if evaluation.TechnicalScore != nil {
		scores.technical = ai.ClampScore(*evaluation.TechnicalScore)
	}
	if evaluation.CommunicationScore != nil {
		scores.communication = ai.ClampScore(*evaluation.CommunicationScore)
	}
	if evaluation.ConfidenceScore != nil {
		scores.confidence = ai.ClampScore(*evaluation.ConfidenceScore)
	}

	return scores
}

func categoryMean(scored []ai.ScoredAnswer, category string) float64 {
	sum := 0
	count := 0
	for _, answer := range scored {
		if answer.Category == category {
			sum += answer.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func roundScore(value float64) int {
	return int(math.Round(value))
}
