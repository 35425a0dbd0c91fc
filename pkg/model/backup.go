package model

import "time"

const (
	BackupManual    = "manual"
	BackupAutomatic = "automatic"

	BackupSuccess = "success"
	BackupFailed  = "failed"
)

type Backup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	SizeBytes int64     `gorm:"not null" json:"size_bytes"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Backup) TableName() string {
	return "backups"
}

// Snapshot is the catalog document written into a backup archive.
type Snapshot struct {
	Version         int                 `json:"version"`
	CreatedAt       time.Time           `json:"created_at"`
	Categories      []Category          `json:"categories"`
	Images          []Image             `json:"images"`
	ImageCategories []ImageCategory     `json:"image_categories"`
	FeaturedImages  []FeaturedImage     `json:"featured_images"`
	Backgrounds     []BackgroundSetting `json:"backgrounds"`
	Settings        []Setting           `json:"settings"`
}

// SnapshotVersion is the current Snapshot document version.
const SnapshotVersion = 1
