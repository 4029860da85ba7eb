package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's relationship to one course with progress.
// The composite unique index makes the at-most-one-per-pair invariant a
// database guarantee rather than a convention.
type Enrollment struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID     uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Progress     int        `json:"progress" gorm:"default:0"` // 0-100
	Completed    bool       `json:"completed" gorm:"default:false"`
	LastAccessed *time.Time `json:"last_accessed"`
	IsDeleted    bool       `json:"-" gorm:"default:false"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
