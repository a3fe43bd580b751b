package dto

// ProfileResponse pairs an account with its role-specific profile. Profile is
// one of StudentProfile, FacultyProfile or RecruiterProfile depending on the
// account role.
type ProfileResponse struct {
	User    UserResponse `json:"user"`
	Profile interface{}  `json:"profile"`
}

// UserUpdateRequest carries optional account field updates.
type UserUpdateRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,max=128"`
	LastName        *string `json:"last_name" validate:"omitempty,max=128"`
	ProfileImageURL *string `json:"profile_image_url" validate:"omitempty,url"`
}

// StudentProfileUpdateRequest carries optional student profile updates.
type StudentProfileUpdateRequest struct {
	University     *string  `json:"university" validate:"omitempty,max=255"`
	Degree         *string  `json:"degree" validate:"omitempty,max=255"`
	GraduationYear *int     `json:"graduation_year" validate:"omitempty,gte=1950,lte=2100"`
	GPA            *float64 `json:"gpa" validate:"omitempty,gte=0,lte=10"`
	Skills         []string `json:"skills" validate:"omitempty,dive,min=1"`
	ResumeURL      *string  `json:"resume_url" validate:"omitempty,url"`
	PortfolioURL   *string  `json:"portfolio_url" validate:"omitempty,url"`
	LinkedinURL    *string  `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL      *string  `json:"github_url" validate:"omitempty,url"`
}

// FacultyProfileUpdateRequest carries optional faculty profile updates.
type FacultyProfileUpdateRequest struct {
	Institution *string `json:"institution" validate:"omitempty,max=255"`
	Department  *string `json:"department" validate:"omitempty,max=255"`
	Position    *string `json:"position" validate:"omitempty,max=255"`
}

// RecruiterProfileUpdateRequest carries optional recruiter profile updates.
type RecruiterProfileUpdateRequest struct {
	Company     *string `json:"company" validate:"omitempty,min=1,max=255"`
	Position    *string `json:"position" validate:"omitempty,max=255"`
	CompanySize *string `json:"company_size" validate:"omitempty,max=64"`
	Industry    *string `json:"industry" validate:"omitempty,max=255"`
	Website     *string `json:"website" validate:"omitempty,url"`
}

// ProfileUpdateRequest wraps account and role-specific updates; only the
// section matching the caller's role is applied.
type ProfileUpdateRequest struct {
	User      *UserUpdateRequest             `json:"user"`
	Student   *StudentProfileUpdateRequest   `json:"student"`
	Faculty   *FacultyProfileUpdateRequest   `json:"faculty"`
	Recruiter *RecruiterProfileUpdateRequest `json:"recruiter"`
}
