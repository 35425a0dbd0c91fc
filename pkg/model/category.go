package model

import "time"

// DefaultCategoryColor is the brand orange used when no color is given.
const DefaultCategoryColor = "#f57931"

// Category groups images for display. Slug is derived from Name and is
// globally unique.
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Slug         string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description  string    `json:"description,omitempty"`
	ColorCode    string    `gorm:"size:7;not null" json:"color_code"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// ImageCategory records that an image belongs to a category.
type ImageCategory struct {
	ImageID    uint      `gorm:"primaryKey;autoIncrement:false" json:"image_id"`
	CategoryID uint      `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ImageCategory) TableName() string {
	return "image_categories"
}
