package models

import "gorm.io/gorm"

// Enrollment is both the course roster entry and the learner's course-list
// entry. The composite unique index enforces set semantics on the roster;
// the application pre-check before settlement is a fast path only.
type Enrollment struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	ProgressID *uint  `json:"progress_id"`
	Status     string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED
	IsDeleted  bool   `gorm:"default:false"`
}
