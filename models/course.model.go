package models

import "gorm.io/gorm"

// Course represents a purchasable course listing
type Course struct {
	gorm.Model
	Name             string `json:"name" gorm:"not null"`
	Description      string `json:"description"`
	WhatYouWillLearn string `json:"what_you_will_learn"`
	Price            uint   `json:"price" gorm:"not null"` // whole rupees; minor units at order time
	Tag              string `json:"tag"`
	ThumbnailURL     string `json:"thumbnail_url"`
	Status           string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE
	InstructorID     uint   `json:"instructor_id" gorm:"index;not null"`
	CategoryID       uint   `json:"category_id" gorm:"index"`
	IsDeleted        bool   `gorm:"default:false"`
}
