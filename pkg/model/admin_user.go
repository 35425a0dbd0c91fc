package model

import "time"

// AdminUser is an administrator who can sign in to the admin API.
type AdminUser struct {
	ID           uint       `gorm:"primaryKey"`
	Username     string     `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash []byte     `gorm:"not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminUser) TableName() string {
	return "admin_users"
}
