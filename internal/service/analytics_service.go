package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

// AnalyticsService aggregates platform-wide counts for the faculty overview.
type AnalyticsService interface {
	Overview(ctx context.Context) (dto.AnalyticsOverviewResponse, error)
}

type analyticsService struct {
	repo     repository.AnalyticsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAnalyticsService constructs the analytics service. The cache client may
// be nil, in which case every request hits the database.
func NewAnalyticsService(repo repository.AnalyticsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
	}
}

func (s *analyticsService) Overview(ctx context.Context) (dto.AnalyticsOverviewResponse, error) {
	const cacheKey = "analytics:overview"
	tracer := otel.Tracer("github.com/acharyaskillx/skillquestify-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.overview")
	span.SetAttributes(attribute.String("analytics.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AnalyticsOverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	overview := dto.AnalyticsOverviewResponse{}

	counters := []struct {
		name   string
		count  func(context.Context) (int64, error)
		target *int64
	}{
		{"students", s.repo.CountStudents, &overview.Students.Total},
		{"active_students", s.repo.CountActiveStudents, &overview.Students.Active},
		{"courses", s.repo.CountCourses, &overview.Courses.Total},
		{"enrollments", s.repo.CountEnrollments, &overview.Courses.Enrollments},
		{"internships", s.repo.CountInternships, &overview.Internships.Total},
		{"applications", s.repo.CountApplications, &overview.Internships.Applications},
	}
	for _, counter := range counters {
		value, err := counter.count(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "count_"+counter.name+"_failed")
			return dto.AnalyticsOverviewResponse{}, err
		}
		*counter.target = value
	}

	span.SetAttributes(
		attribute.Int64("analytics.students", overview.Students.Total),
		attribute.Int64("analytics.enrollments", overview.Courses.Enrollments),
	)

	if s.cache != nil {
		payload, err := json.Marshal(overview)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return overview, nil
}
