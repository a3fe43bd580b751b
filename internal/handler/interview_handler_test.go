package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/config"
	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/handler"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
	"github.com/acharyaskillx/skillquestify-api/internal/router"
	"github.com/acharyaskillx/skillquestify-api/internal/service"
	"github.com/acharyaskillx/skillquestify-api/pkg/ai"
)

type scriptedInterviewer struct{}

func (s *scriptedInterviewer) GenerateQuestions(_ context.Context, _ string, difficulty string, count int) ([]ai.GeneratedQuestion, error) {
	questions := make([]ai.GeneratedQuestion, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, ai.GeneratedQuestion{
			Question:   fmt.Sprintf("Question %d", i+1),
			Difficulty: difficulty,
			Category:   "technical",
		})
	}
	return questions, nil
}

func (s *scriptedInterviewer) ScoreAnswer(_ context.Context, _ ai.AnswerInput) (ai.AnswerScore, error) {
	return ai.AnswerScore{Score: 80, Feedback: "solid"}, nil
}

func (s *scriptedInterviewer) AggregateEvaluation(_ context.Context, _ string, _ []ai.ScoredAnswer) (ai.Evaluation, error) {
	return ai.Evaluation{Feedback: "good session"}, nil
}

func (s *scriptedInterviewer) PersonalizedFeedback(_ context.Context, _ ai.FeedbackInput) (string, error) {
	return "Keep practicing system design questions.", nil
}

func setupInterviewApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.InterviewSession{}))
	require.NoError(t, db.Create(&models.User{
		Username: "ada", Email: "ada@example.com", Password: "x",
		FirstName: "Ada", LastName: "Lovelace", Role: models.RoleStudent,
	}).Error)

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	interviewService := service.NewInterviewService(
		repository.NewInterviewRepository(db),
		repository.NewUserRepository(db),
		&scriptedInterviewer{},
		nil,
		validate,
		3,
		logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		InterviewHandler: handler.NewInterviewHandler(interviewService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(1))
			c.Locals("user_role", models.RoleStudent)
			return c.Next()
		},
	})

	return app, db
}

type sessionEnvelope struct {
	Success bool                         `json:"success"`
	Data    dto.InterviewSessionResponse `json:"data"`
	Message string                       `json:"message"`
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestInterviewHandlerLifecycle(t *testing.T) {
	app, _ := setupInterviewApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/ai-interview/start", map[string]interface{}{
		"jobRole": "Backend Engineer",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var started sessionEnvelope
	decodeResponse(t, resp, &started)
	require.True(t, started.Success)
	require.Equal(t, "interview started", started.Message)
	require.Equal(t, "in_progress", started.Data.Status)
	require.Equal(t, "medium", started.Data.Difficulty)
	require.Len(t, started.Data.Questions, 3)
	require.Nil(t, started.Data.OverallScore)

	sessionPath := "/api/ai-interview/" + strconv.FormatUint(uint64(started.Data.ID), 10)

	for i := 0; i < 3; i++ {
		resp, err = app.Test(jsonRequest(t, "PUT", sessionPath+"/answer", map[string]interface{}{
			"questionIndex": i,
			"answer":        "I would use a queue.",
			"timeSpent":     42,
		}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest(t, "POST", sessionPath+"/complete", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var completed sessionEnvelope
	decodeResponse(t, resp, &completed)
	require.Equal(t, "interview completed", completed.Message)
	require.Equal(t, "completed", completed.Data.Status)
	require.NotNil(t, completed.Data.OverallScore)
	require.Equal(t, 80, *completed.Data.OverallScore)
	require.Equal(t, "Keep practicing system design questions.", completed.Data.Feedback)
	require.NotNil(t, completed.Data.CompletedAt)

	resp, err = app.Test(jsonRequest(t, "PUT", sessionPath+"/answer", map[string]interface{}{
		"questionIndex": 0,
		"answer":        "too late",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInterviewHandlerRejectsMissingJobRole(t *testing.T) {
	app, _ := setupInterviewApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/ai-interview/start", map[string]interface{}{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
}

func TestInterviewHandlerUnknownSession(t *testing.T) {
	app, _ := setupInterviewApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ai-interview/9999", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/ai-interview/not-a-number", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandlerHistory(t *testing.T) {
	app, _ := setupInterviewApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/ai-interview/start", map[string]interface{}{
		"jobRole": "Data Engineer",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/my-interviews", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listed struct {
		Success bool                           `json:"success"`
		Data    []dto.InterviewSessionResponse `json:"data"`
	}
	decodeResponse(t, resp, &listed)
	require.True(t, listed.Success)
	require.Len(t, listed.Data, 1)
	require.Equal(t, "Data Engineer", listed.Data[0].JobRole)
}
