package dto

import (
	"time"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=128"`
	LastName  string `json:"last_name" validate:"omitempty,max=128"`
	Role      string `json:"role" validate:"required,oneof=student faculty recruiter"`
	Company   string `json:"company" validate:"required_if=Role recruiter,omitempty,max=255"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            string    `json:"role"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// AuthResponse bundles the issued token with the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:              model.ID,
		Username:        model.Username,
		Email:           model.Email,
		FirstName:       model.FirstName,
		LastName:        model.LastName,
		Role:            model.Role,
		ProfileImageURL: model.ProfileImageURL,
		CreatedAt:       model.CreatedAt,
	}
}
