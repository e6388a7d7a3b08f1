package models

import "gorm.io/gorm"

// CourseProgress tracks one learner's completion state in one course.
// At most one record exists per (user, course) pair.
type CourseProgress struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID  uint `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	IsDeleted bool `gorm:"default:false"`
}

// CompletedLecture marks a single lecture as finished within a progress record
type CompletedLecture struct {
	gorm.Model
	CourseProgressID uint `json:"course_progress_id" gorm:"not null;uniqueIndex:idx_completed_progress_lecture"`
	SubSectionID     uint `json:"sub_section_id" gorm:"not null;uniqueIndex:idx_completed_progress_lecture"`
}
