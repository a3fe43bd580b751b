package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type flakyInterviewer struct {
	failures  int
	calls     int
	sawDeadln bool
}

func (f *flakyInterviewer) GenerateQuestions(ctx context.Context, jobRole, difficulty string, count int) ([]GeneratedQuestion, error) {
	f.calls++
	if _, ok := ctx.Deadline(); ok {
		f.sawDeadln = true
	}
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return []GeneratedQuestion{{Question: "Tell me about yourself", Category: "behavioral"}}, nil
}

func (f *flakyInterviewer) ScoreAnswer(ctx context.Context, input AnswerInput) (AnswerScore, error) {
	f.calls++
	if f.calls <= f.failures {
		return AnswerScore{}, errors.New("transient failure")
	}
	return AnswerScore{Score: 75}, nil
}

func (f *flakyInterviewer) AggregateEvaluation(ctx context.Context, jobRole string, answers []ScoredAnswer) (Evaluation, error) {
	f.calls++
	return Evaluation{}, nil
}

func (f *flakyInterviewer) PersonalizedFeedback(ctx context.Context, input FeedbackInput) (string, error) {
	f.calls++
	return "ok", nil
}

func TestPolicyRetriesTransientFailure(t *testing.T) {
	inner := &flakyInterviewer{failures: 1}
	policy := WithPolicy(inner, time.Second, 1)

	questions, err := policy.GenerateQuestions(context.Background(), "Backend Engineer", "medium", 1)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, 2, inner.calls)
	require.True(t, inner.sawDeadln)
}

func TestPolicyGivesUpAfterRetries(t *testing.T) {
	inner := &flakyInterviewer{failures: 10}
	policy := WithPolicy(inner, 0, 2)

	_, err := policy.ScoreAnswer(context.Background(), AnswerInput{Question: "q", Answer: "a"})
	require.Error(t, err)
	require.Equal(t, 3, inner.calls)
}

func TestPolicyHonorsCancelledContext(t *testing.T) {
	inner := &flakyInterviewer{}
	policy := WithPolicy(inner, time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := policy.GenerateQuestions(ctx, "Backend Engineer", "medium", 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, inner.calls)
}

func TestPolicyNegativeRetriesNormalized(t *testing.T) {
	inner := &flakyInterviewer{failures: 1}
	policy := WithPolicy(inner, 0, -3)

	_, err := policy.ScoreAnswer(context.Background(), AnswerInput{})
	require.Error(t, err)
	require.Equal(t, 1, inner.calls)
}

func TestClampScore(t *testing.T) {
	require.Equal(t, 0, ClampScore(-5))
	require.Equal(t, 0, ClampScore(0))
	require.Equal(t, 64, ClampScore(64))
	require.Equal(t, 100, ClampScore(100))
	require.Equal(t, 100, ClampScore(150))
}

func TestQuestionSchemaValidation(t *testing.T) {
	var valid interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"questions":[{"question":"What is a goroutine?","category":"technical"}]}`), &valid))
	require.NoError(t, questionSchema.Validate(valid))

	var missingCategory interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"questions":[{"question":"What is a goroutine?"}]}`), &missingCategory))
	require.Error(t, questionSchema.Validate(missingCategory))

	var missingQuestions interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"items":[]}`), &missingQuestions))
	require.Error(t, questionSchema.Validate(missingQuestions))
}
