package model

import "time"

// SettingDefaultCategoryID holds the id of the category assigned to images
// that would otherwise be left without one.
const SettingDefaultCategoryID = "default_category_id"

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:50;not null;uniqueIndex" json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
