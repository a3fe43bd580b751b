package models

import (
	"time"

	"gorm.io/datatypes"
)

// Platform roles. Every user carries exactly one.
const (
	RoleStudent   = "student"
	RoleFaculty   = "faculty"
	RoleRecruiter = "recruiter"
)

// ValidRole reports whether the given role is one of the supported platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleRecruiter:
		return true
	}
	return false
}

// User is a platform account. The password field always holds a bcrypt hash.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"size:255;not null" json:"-"`
	FirstName       string    `gorm:"size:128" json:"first_name"`
	LastName        string    `gorm:"size:128" json:"last_name"`
	Role            string    `gorm:"size:16;not null" json:"role"`
	ProfileImageURL string    `gorm:"size:512" json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName prefers the first name and falls back to the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// StudentProfile extends a student account with academic details.
type StudentProfile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	University     string         `gorm:"size:255" json:"university"`
	Degree         string         `gorm:"size:255" json:"degree"`
	GraduationYear int            `json:"graduation_year"`
	GPA            float64        `gorm:"type:decimal(3,2)" json:"gpa"`
	Skills         datatypes.JSON `gorm:"type:json" json:"skills"`
	ResumeURL      string         `gorm:"size:512" json:"resume_url"`
	PortfolioURL   string         `gorm:"size:512" json:"portfolio_url"`
	LinkedinURL    string         `gorm:"size:512" json:"linkedin_url"`
	GithubURL      string         `gorm:"size:512" json:"github_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// FacultyProfile extends a faculty account with institutional details.
type FacultyProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Institution string    `gorm:"size:255" json:"institution"`
	Department  string    `gorm:"size:255" json:"department"`
	Position    string    `gorm:"size:255" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecruiterProfile extends a recruiter account with company details.
type RecruiterProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Company     string    `gorm:"size:255;not null" json:"company"`
	Position    string    `gorm:"size:255" json:"position"`
	CompanySize string    `gorm:"size:64" json:"company_size"`
	Industry    string    `gorm:"size:255" json:"industry"`
	Website     string    `gorm:"size:512" json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
