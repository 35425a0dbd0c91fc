package gorm

import (
	"fmt"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure BackgroundsStore implements store.BackgroundsStore
var _ store.BackgroundsStore = (*BackgroundsStore)(nil)

// BackgroundsStore implements store.BackgroundsStore using GORM
type BackgroundsStore struct {
	db *gorm.DB
}

// NewBackgroundsStore creates a new BackgroundsStore
func NewBackgroundsStore(db *gorm.DB) *BackgroundsStore {
	return &BackgroundsStore{db: db}
}

func (s *BackgroundsStore) GetBackground(section string) (*model.BackgroundSetting, error) {
	var b model.BackgroundSetting
	if err := s.db.Where("section = ?", section).First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *BackgroundsStore) ListBackgrounds() ([]model.BackgroundSetting, error) {
	var backgrounds []model.BackgroundSetting
	if err := s.db.Order("section").Find(&backgrounds).Error; err != nil {
		return nil, err
	}
	return backgrounds, nil
}

func (s *BackgroundsStore) UpsertBackground(b *model.BackgroundSetting) error {
	if b.Section == "" {
		return fmt.Errorf("%w: section is required", store.ErrInvalidInput)
	}
	if b.ColorCode == "" {
		b.ColorCode = model.DefaultBackgroundColor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if b.ImageID != nil {
			var count int64
			if err := tx.Model(&model.Image{}).Where("id = ?", *b.ImageID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("image %d: %w", *b.ImageID, store.ErrNotFound)
			}
		}

		var existing model.BackgroundSetting
		err := tx.Where("section = ?", b.Section).First(&existing).Error
		switch {
		case err == nil:
			b.ID = existing.ID
			b.CreatedAt = existing.CreatedAt
			return tx.Model(&existing).Updates(map[string]interface{}{
				"image_id":   b.ImageID,
				"color_code": b.ColorCode,
				"is_active":  b.IsActive,
			}).Error
		case notFound(err) == store.ErrNotFound:
			return tx.Create(b).Error
		default:
			return err
		}
	})
}
