package models

import "gorm.io/gorm"

// Course represents a marketplace course owned by an instructor
type Course struct {
	gorm.Model
	Title        string  `json:"title" gorm:"not null"`
	Slug         string  `json:"slug" gorm:"uniqueIndex;not null"` // server-derived from Title
	Description  string  `json:"description" gorm:"type:text;default:''"`
	Category     string  `json:"category" gorm:"index;default:''"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	Price        float64 `json:"price" gorm:"default:0;check:price >= 0"`
	Rating       float64 `json:"rating" gorm:"default:0"`        // denormalized average of reviews
	StudentCount int64   `json:"student_count" gorm:"default:0"` // denormalized enrollment count
	ThumbnailURL string  `json:"thumbnail_url" gorm:"default:''"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`

	Instructor User     `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Modules    []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
}

// Module represents a section within a course
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text;default:''"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted   bool   `json:"-" gorm:"default:false"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`
}

// Lesson represents a single piece of content within a module
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO
	TextContent string `json:"text_content" gorm:"type:text"`      // For TEXT type
	VideoURL    string `json:"video_url"`                          // For VIDEO type
	Duration    int    `json:"duration" gorm:"default:0"`          // minutes
	OrderIndex  int    `json:"order_index" gorm:"default:0"`       // Order within module
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
