package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (AuthService, *gormRepos) {
	t.Helper()

	db := newTestDB(t)
	repos := &gormRepos{
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
	}
	svc := NewAuthService(repos.users, repos.profiles, testValidator(), testSecret, time.Hour, testLogger())
	return svc, repos
}

type gormRepos struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func TestAuthServiceRegisterIssuesToken(t *testing.T) {
	svc, repos := newAuthService(t)

	response, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "correct horse",
		Role:      models.RoleStudent,
		FirstName: "Ada",
	})
	require.NoError(t, err)
	require.Equal(t, "ada", response.User.Username)
	require.Equal(t, models.RoleStudent, response.User.Role)

	token, err := jwt.Parse(response.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, models.RoleStudent, claims["role"])

	// A student profile row is created alongside the account.
	profile, err := repos.profiles.GetStudent(context.Background(), response.User.ID)
	require.NoError(t, err)
	require.Equal(t, response.User.ID, profile.UserID)
}

func TestAuthServiceRegisterRecruiterRequiresCompany(t *testing.T) {
	svc, repos := newAuthService(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "hunter",
		Email:    "hunter@example.com",
		Password: "correct horse",
		Role:     models.RoleRecruiter,
	})
	require.Error(t, err)

	response, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "hunter",
		Email:    "hunter@example.com",
		Password: "correct horse",
		Role:     models.RoleRecruiter,
		Company:  "Acme",
	})
	require.NoError(t, err)

	profile, err := repos.profiles.GetRecruiter(context.Background(), response.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme", profile.Company)
}

func TestAuthServiceRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthService(t)

	payload := dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     models.RoleStudent,
	}
	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrUsernameTaken)

	payload.Username = "ada2"
	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	response, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "correct horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
