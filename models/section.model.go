package models

import "gorm.io/gorm"

// Section is a chapter of a course
type Section struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// SubSection is a single lecture inside a section
type SubSection struct {
	gorm.Model
	SectionID   uint   `json:"section_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    int64  `json:"duration" gorm:"default:0"` // seconds
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}
