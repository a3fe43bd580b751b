package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acharyaskillx/skillquestify-api/internal/config"
	"github.com/acharyaskillx/skillquestify-api/internal/database"
	"github.com/acharyaskillx/skillquestify-api/internal/handler"
	"github.com/acharyaskillx/skillquestify-api/internal/middleware"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
	"github.com/acharyaskillx/skillquestify-api/internal/router"
	"github.com/acharyaskillx/skillquestify-api/internal/service"
	"github.com/acharyaskillx/skillquestify-api/pkg/ai"
	cloud "github.com/acharyaskillx/skillquestify-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.FacultyProfile{},
		&models.RecruiterProfile{},
		&models.Course{},
		&models.CourseEnrollment{},
		&models.Internship{},
		&models.InternshipApplication{},
		&models.Competition{},
		&models.CompetitionRegistration{},
		&models.InterviewSession{},
		&models.UploadRecord{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Drain()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	internshipRepo := repository.NewInternshipRepository(db)
	competitionRepo := repository.NewCompetitionRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	openAIInterviewer, err := ai.NewOpenAIInterviewer(ai.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create openai interviewer: %v", err)
	}
	interviewer := ai.WithPolicy(openAIInterviewer, cfg.AIRequestTimeout, 1)

	events := service.NewNATSEventPublisher(natsConn, cfg.EventSubjectBase, logger)

	authService := service.NewAuthService(userRepo, profileRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	profileService := service.NewProfileService(userRepo, profileRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, events, validate, logger)
	internshipService := service.NewInternshipService(internshipRepo, events, validate, logger)
	competitionService := service.NewCompetitionService(competitionRepo, events, validate, logger)
	interviewService := service.NewInterviewService(interviewRepo, userRepo, interviewer, events, validate, cfg.InterviewQuestionCount, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, redisClient, cfg.AnalyticsCacheTTL, logger)
	uploadService := service.NewUploadService(uploader, uploadRepo, cfg.UploadMaxMB, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		ProfileHandler:     handler.NewProfileHandler(profileService, logger),
		CourseHandler:      handler.NewCourseHandler(courseService, logger),
		InternshipHandler:  handler.NewInternshipHandler(internshipService, logger),
		CompetitionHandler: handler.NewCompetitionHandler(competitionService, logger),
		InterviewHandler:   handler.NewInterviewHandler(interviewService, logger),
		AnalyticsHandler:   handler.NewAnalyticsHandler(analyticsService, logger),
		UploadHandler:      handler.NewUploadHandler(uploadService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
