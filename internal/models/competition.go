package models

import (
	"time"

	"gorm.io/datatypes"
)

// Competition is a hackathon or contest organised by faculty.
type Competition struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Title                string         `gorm:"size:255;not null" json:"title"`
	Description          string         `gorm:"type:text" json:"description"`
	Type                 string         `gorm:"size:32" json:"type"`
	Category             string         `gorm:"size:128" json:"category"`
	Duration             string         `gorm:"size:64" json:"duration"`
	StartDate            *time.Time     `json:"start_date"`
	EndDate              *time.Time     `json:"end_date"`
	RegistrationDeadline *time.Time     `json:"registration_deadline"`
	ImageURL             string         `gorm:"size:512" json:"image_url"`
	Prizes               datatypes.JSON `gorm:"type:json" json:"prizes"`
	Rules                string         `gorm:"type:text" json:"rules"`
	IsActive             bool           `gorm:"default:true" json:"is_active"`
	OrganizedBy          uint           `gorm:"index" json:"organized_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// RegistrationOpen reports whether the registration deadline has not yet passed.
func (c Competition) RegistrationOpen(reference time.Time) bool {
	return c.RegistrationDeadline == nil || reference.Before(*c.RegistrationDeadline)
}

// CompetitionRegistration links a student (and optional team) to a competition.
type CompetitionRegistration struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CompetitionID uint           `gorm:"not null;uniqueIndex:idx_competition_student" json:"competition_id"`
	StudentID     uint           `gorm:"not null;uniqueIndex:idx_competition_student" json:"student_id"`
	TeamName      string         `gorm:"size:255" json:"team_name"`
	TeamMembers   datatypes.JSON `gorm:"type:json" json:"team_members"`
	RegisteredAt  time.Time      `gorm:"autoCreateTime" json:"registered_at"`
	Competition   Competition    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"competition"`
}
