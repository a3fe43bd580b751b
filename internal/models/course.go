package models

import "time"

// Course is a catalog entry created by faculty.
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:128" json:"category"`
	Level       string    `gorm:"size:32" json:"level"`
	Duration    string    `gorm:"size:64" json:"duration"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Rating      float64   `gorm:"type:decimal(2,1)" json:"rating"`
	Price       float64   `gorm:"type:decimal(10,2)" json:"price"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedBy   uint      `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseEnrollment links a student to a course. One row per (course, student) pair.
type CourseEnrollment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_course_student" json:"student_id"`
	Progress    int        `gorm:"default:0" json:"progress"`
	CompletedAt *time.Time `json:"completed_at"`
	EnrolledAt  time.Time  `gorm:"autoCreateTime" json:"enrolled_at"`
	Course      Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course"`
}

// IsCompleted reports whether the student has finished the course.
func (e CourseEnrollment) IsCompleted() bool {
	return e.CompletedAt != nil || e.Progress >= 100
}
