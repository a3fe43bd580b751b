package models

import (
	"time"

	"gorm.io/datatypes"
)

// Application review states set by the posting recruiter.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// ValidApplicationStatus reports whether the given status is a known review state.
func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// Internship is a job or internship posting created by a recruiter.
type Internship struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Title               string         `gorm:"size:255;not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	Company             string         `gorm:"size:255;not null" json:"company"`
	Location            string         `gorm:"size:255" json:"location"`
	Type                string         `gorm:"size:32" json:"type"`
	Duration            string         `gorm:"size:64" json:"duration"`
	Salary              string         `gorm:"size:128" json:"salary"`
	Requirements        datatypes.JSON `gorm:"type:json" json:"requirements"`
	Skills              datatypes.JSON `gorm:"type:json" json:"skills"`
	IsRemote            bool           `gorm:"default:false" json:"is_remote"`
	IsActive            bool           `gorm:"default:true" json:"is_active"`
	ApplicationDeadline *time.Time     `json:"application_deadline"`
	PostedBy            uint           `gorm:"index;not null" json:"posted_by"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// InternshipApplication links a student to a posting. One row per (internship, student) pair.
type InternshipApplication struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	InternshipID uint       `gorm:"not null;uniqueIndex:idx_internship_student" json:"internship_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_internship_student" json:"student_id"`
	Status       string     `gorm:"size:32;default:pending" json:"status"`
	CoverLetter  string     `gorm:"type:text" json:"cover_letter"`
	AppliedAt    time.Time  `gorm:"autoCreateTime" json:"applied_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Internship   Internship `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"internship"`
}
