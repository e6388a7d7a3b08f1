package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string `gorm:"default:''"`
	FirstName       string `gorm:"default:''"`
	LastName        string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Role            string `gorm:"default:'USER'"` // USER, INSTRUCTOR, ADMIN
	Password        string `gorm:"not null"`
	About           string
	IsEmailVerified bool   `gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}
