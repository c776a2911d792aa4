package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a storefront account. Email is unique.
type User struct {
	gorm.Model
	Name     string     `gorm:"size:255;not null" json:"name"`
	Email    string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string     `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string     `gorm:"size:20;not null;default:USER" json:"role"`
	Phone    *string    `gorm:"size:50" json:"phone"`
	Address  *string    `gorm:"type:text" json:"address"`
	JoinDate *time.Time `json:"joinDate"`
}
