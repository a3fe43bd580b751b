package handler_test

import (
	"fmt"
	"io"
	"net/http/httptest"
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
	"github.com/acharyaskillx/skillquestify-api/internal/utils"
)

// setupCatalogApp wires the catalog routes behind a guard that rejects
// every request, the way an unauthenticated client would be rejected.
func setupCatalogApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.CourseEnrollment{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	courseService := service.NewCourseService(
		repository.NewCourseRepository(db),
		nil,
		validate,
		logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		CourseHandler: handler.NewCourseHandler(courseService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusUnauthorized, "missing or malformed token")
		},
	})

	return app, db
}

func TestCourseCatalogReadableWithoutAuth(t *testing.T) {
	app, db := setupCatalogApp(t)

	require.NoError(t, db.Create(&models.Course{
		Title: "Distributed Systems", Category: "engineering", IsActive: true, CreatedBy: 2,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/courses", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listed struct {
		Success bool                 `json:"success"`
		Data    []dto.CourseResponse `json:"data"`
	}
	decodeResponse(t, resp, &listed)
	require.True(t, listed.Success)
	require.Len(t, listed.Data, 1)
	require.Equal(t, "Distributed Systems", listed.Data[0].Title)

	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/courses/%d", listed.Data[0].ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCourseWritesStayGuarded(t *testing.T) {
	app, db := setupCatalogApp(t)

	require.NoError(t, db.Create(&models.Course{
		Title: "Compilers", IsActive: true, CreatedBy: 2,
	}).Error)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/courses", map[string]interface{}{
		"title": "Intro to Go",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/courses/1/enroll", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/my-enrollments", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
