package model

import "time"

// FeaturedImage promotes one image with an optional story. At most one row
// is active at a time; the store's write path keeps it that way.
type FeaturedImage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ImageID   uint       `gorm:"not null;index" json:"image_id"`
	Title     string     `gorm:"size:255" json:"title,omitempty"`
	Story     string     `json:"story,omitempty"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (FeaturedImage) TableName() string {
	return "featured_images"
}
