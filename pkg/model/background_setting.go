package model

import "time"

// DefaultBackgroundColor is the brand blue shown when a section has no image.
const DefaultBackgroundColor = "#19114f"

type BackgroundSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Section   string    `gorm:"size:50;not null;uniqueIndex" json:"section"`
	ImageID   *uint     `json:"image_id,omitempty"`
	ColorCode string    `gorm:"size:7;not null" json:"color_code"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BackgroundSetting) TableName() string {
	return "background_settings"
}
