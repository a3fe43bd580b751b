package ai

import (
	"context"
	"time"
)

// Policy wraps an Interviewer with a per-call timeout and a single retry so
// transient network blips do not fail an entire interview completion. All
// wrapped operations are idempotent, which makes the retry safe.
type Policy struct {
	next    Interviewer
	timeout time.Duration
	retries int
}

// WithPolicy decorates the interviewer. A non-positive timeout disables the
// deadline; retries is the number of additional attempts after the first.
func WithPolicy(next Interviewer, timeout time.Duration, retries int) *Policy {
	if retries < 0 {
		retries = 0
	}
	return &Policy{next: next, timeout: timeout, retries: retries}
}

func (p *Policy) GenerateQuestions(ctx context.Context, jobRole, difficulty string, count int) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	err := p.run(ctx, func(attemptCtx context.Context) error {
		var callErr error
		questions, callErr = p.next.GenerateQuestions(attemptCtx, jobRole, difficulty, count)
		return callErr
	})
	return questions, err
}

func (p *Policy) ScoreAnswer(ctx context.Context, input AnswerInput) (AnswerScore, error) {
	var score AnswerScore
	err := p.run(ctx, func(attemptCtx context.Context) error {
		var callErr error
		score, callErr = p.next.ScoreAnswer(attemptCtx, input)
		return callErr
	})
	return score, err
}

func (p *Policy) AggregateEvaluation(ctx context.Context, jobRole string, answers []ScoredAnswer) (Evaluation, error) {
	var evaluation Evaluation
	err := p.run(ctx, func(attemptCtx context.Context) error {
		var callErr error
		evaluation, callErr = p.next.AggregateEvaluation(attemptCtx, jobRole, answers)
		return callErr
	})
	return evaluation, err
}

func (p *Policy) PersonalizedFeedback(ctx context.Context, input FeedbackInput) (string, error) {
	var feedback string
	err := p.run(ctx, func(attemptCtx context.Context) error {
		var callErr error
		feedback, callErr = p.next.PersonalizedFeedback(attemptCtx, input)
		return callErr
	})
	return feedback, err
}

func (p *Policy) run(ctx context.Context, call func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		attemptCtx := ctx
		cancel := func() {}
		if p.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.timeout)
		}

		lastErr = call(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}
