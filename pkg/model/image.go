package model

import "time"

// Image is a stored photograph. Filename is the generated storage name and
// is unique; text metadata fields are empty when the source carried none.
type Image struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Filename      string     `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `json:"description"`
	CameraMake    string     `gorm:"size:100" json:"camera_make,omitempty"`
	CameraModel   string     `gorm:"size:100" json:"camera_model,omitempty"`
	Lens          string     `gorm:"size:100" json:"lens,omitempty"`
	Aperture      string     `gorm:"size:20" json:"aperture,omitempty"`
	ShutterSpeed  string     `gorm:"size:20" json:"shutter_speed,omitempty"`
	ISO           int        `gorm:"column:iso" json:"iso,omitempty"`
	FocalLength   string     `gorm:"size:20" json:"focal_length,omitempty"`
	Location      string     `gorm:"size:255" json:"location,omitempty"`
	DateTaken     *time.Time `json:"date_taken,omitempty"`
	DateUploaded  time.Time  `gorm:"not null" json:"date_uploaded"`
	IsActive      bool       `gorm:"not null" json:"is_active"`
	ViewCount     int        `gorm:"not null" json:"view_count"`
	DownloadCount int        `gorm:"not null" json:"download_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Categories is populated by the store on reads.
	Categories []Category `gorm:"-" json:"categories"`
}

func (Image) TableName() string {
	return "images"
}
