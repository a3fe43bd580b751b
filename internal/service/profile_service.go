package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

// ErrUserNotFound indicates the user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ProfileService exposes the authenticated user's account and role profile.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	Update(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
}

type profileService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProfileService builds the profile service.
func NewProfileService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ProfileService {
	return &profileService{
		users:     users,
		profiles:  profiles,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	profile, err := s.roleProfile(ctx, user)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.ProfileResponse{User: dto.NewUserResponse(user), Profile: profile}, nil
}

func (s *profileService) Update(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	if payload.User != nil {
		applyUserUpdate(&user, *payload.User)
		if err := s.users.Update(ctx, &user); err != nil {
			return dto.ProfileResponse{}, err
		}
	}

	switch user.Role {
	case models.RoleStudent:
		if payload.Student != nil {
			if err := s.updateStudent(ctx, user.ID, *payload.Student); err != nil {
				return dto.ProfileResponse{}, err
			}
		}
	case models.RoleFaculty:
		if payload.Faculty != nil {
			if err := s.updateFaculty(ctx, user.ID, *payload.Faculty); err != nil {
				return dto.ProfileResponse{}, err
			}
		}
	case models.RoleRecruiter:
		if payload.Recruiter != nil {
			if err := s.updateRecruiter(ctx, user.ID, *payload.Recruiter); err != nil {
				return dto.ProfileResponse{}, err
			}
		}
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("profile updated")

	return s.Get(ctx, userID)
}

func (s *profileService) roleProfile(ctx context.Context, user models.User) (interface{}, error) {
	switch user.Role {
	case models.RoleStudent:
		profile, err := s.profiles.GetStudent(ctx, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return profile, err
	case models.RoleFaculty:
		profile, err := s.profiles.GetFaculty(ctx, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return profile, err
	case models.RoleRecruiter:
		profile, err := s.profiles.GetRecruiter(ctx, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return profile, err
	}
	return nil, nil
}

func (s *profileService) updateStudent(ctx context.Context, userID uint, update dto.StudentProfileUpdateRequest) error {
	profile, err := s.profiles.GetStudent(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		profile = models.StudentProfile{UserID: userID}
	}
	if update.University != nil {
		profile.University = *update.University
	}
	if update.Degree != nil {
		profile.Degree = *update.Degree
	}
	if update.GraduationYear != nil {
		profile.GraduationYear = *update.GraduationYear
	}
	if update.GPA != nil {
		profile.GPA = *update.GPA
	}
	if update.Skills != nil {
		raw, err := json.Marshal(update.Skills)
		if err != nil {
			return err
		}
		profile.Skills = raw
	}
	if update.ResumeURL != nil {
		profile.ResumeURL = *update.ResumeURL
	}
	if update.PortfolioURL != nil {
		profile.PortfolioURL = *update.PortfolioURL
	}
	if update.LinkedinURL != nil {
		profile.LinkedinURL = *update.LinkedinURL
	}
	if update.GithubURL != nil {
		profile.GithubURL = *update.GithubURL
	}
	return s.profiles.SaveStudent(ctx, &profile)
}

func (s *profileService) updateFaculty(ctx context.Context, userID uint, update dto.FacultyProfileUpdateRequest) error {
	profile, err := s.profiles.GetFaculty(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		profile = models.FacultyProfile{UserID: userID}
	}
	if update.Institution != nil {
		profile.Institution = *update.Institution
	}
	if update.Department != nil {
		profile.Department = *update.Department
	}
	if update.Position != nil {
		profile.Position = *update.Position
	}
	return s.profiles.SaveFaculty(ctx, &profile)
}

func (s *profileService) updateRecruiter(ctx context.Context, userID uint, update dto.RecruiterProfileUpdateRequest) error {
	profile, err := s.profiles.GetRecruiter(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		profile = models.RecruiterProfile{UserID: userID}
	}
	if update.Company != nil {
		profile.Company = *update.Company
	}
	if update.Position != nil {
		profile.Position = *update.Position
	}
	if update.CompanySize != nil {
		profile.CompanySize = *update.CompanySize
	}
	if update.Industry != nil {
		profile.Industry = *update.Industry
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}
	return s.profiles.SaveRecruiter(ctx, &profile)
}

func applyUserUpdate(user *models.User, update dto.UserUpdateRequest) {
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.ProfileImageURL != nil {
		user.ProfileImageURL = *update.ProfileImageURL
	}
}
