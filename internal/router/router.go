package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acharyaskillx/skillquestify-api/internal/config"
	"github.com/acharyaskillx/skillquestify-api/internal/handler"
	"github.com/acharyaskillx/skillquestify-api/internal/middleware"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	ProfileHandler     *handler.ProfileHandler
	CourseHandler      *handler.CourseHandler
	InternshipHandler  *handler.InternshipHandler
	CompetitionHandler *handler.CompetitionHandler
	InterviewHandler   *handler.InterviewHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	UploadHandler      *handler.UploadHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Catalog reads are public and must be registered before the
	// authenticated group so the JWT guard never runs for them.
	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterPublic(api.Group("/courses"))
	}
	if deps.InternshipHandler != nil {
		deps.InternshipHandler.RegisterPublic(api.Group("/internships"))
	}
	if deps.CompetitionHandler != nil {
		deps.CompetitionHandler.RegisterPublic(api.Group("/competitions"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	requireStudent := middleware.RequireRole(models.RoleStudent)
	requireFaculty := middleware.RequireRole(models.RoleFaculty)
	requireRecruiter := middleware.RequireRole(models.RoleRecruiter)

	protected := api.Group("", jwtMiddleware)

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(protected.Group("/profile"))
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(protected.Group("/courses"), requireFaculty, requireStudent)
		deps.CourseHandler.RegisterEnrollments(protected, requireStudent)
	}

	if deps.InternshipHandler != nil {
		deps.InternshipHandler.Register(protected.Group("/internships"), requireRecruiter, requireStudent)
		deps.InternshipHandler.RegisterApplications(protected, requireRecruiter, requireStudent)
	}

	if deps.CompetitionHandler != nil {
		deps.CompetitionHandler.Register(protected.Group("/competitions"), requireFaculty, requireStudent)
		deps.CompetitionHandler.RegisterRegistrations(protected, requireStudent)
	}

	if deps.InterviewHandler != nil {
		// Starting and completing interviews trigger paid model calls, so
		// both sit behind a per-user limiter.
		limiter := middleware.RateLimit("ai-interview", 10, time.Minute)
		deps.InterviewHandler.Register(protected.Group("/ai-interview", requireStudent), limiter)
		deps.InterviewHandler.RegisterHistory(protected.Group("", requireStudent))
	}

	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.Register(protected.Group("/analytics", requireFaculty))
	}

	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(protected.Group("/uploads"))
	}
}
