package gorm

import (
	"fmt"
	"time"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure FeaturedStore implements store.FeaturedStore
var _ store.FeaturedStore = (*FeaturedStore)(nil)

// FeaturedStore implements store.FeaturedStore using GORM
type FeaturedStore struct {
	db *gorm.DB
}

// NewFeaturedStore creates a new FeaturedStore
func NewFeaturedStore(db *gorm.DB) *FeaturedStore {
	return &FeaturedStore{db: db}
}

func (s *FeaturedStore) CurrentFeatured() (*model.FeaturedImage, error) {
	var f model.FeaturedImage
	err := s.db.Where("is_active = ?", true).Order("start_date DESC, id DESC").First(&f).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (s *FeaturedStore) SetFeatured(f *model.FeaturedImage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Image{}).Where("id = ?", f.ImageID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("image %d: %w", f.ImageID, store.ErrNotFound)
		}

		if err := tx.Model(&model.FeaturedImage{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}

		f.ID = 0
		f.IsActive = true
		if f.StartDate.IsZero() {
			f.StartDate = time.Now().UTC()
		}
		return tx.Create(f).Error
	})
}

func (s *FeaturedStore) UpdateFeaturedStory(title, story *string) (*model.FeaturedImage, error) {
	current, err := s.CurrentFeatured()
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if title != nil {
		fields["title"] = *title
	}
	if story != nil {
		fields["story"] = *story
	}
	if len(fields) > 0 {
		if err := s.db.Model(&model.FeaturedImage{}).Where("id = ?", current.ID).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.CurrentFeatured()
}

func (s *FeaturedStore) DeactivateFeatured() error {
	return s.db.Model(&model.FeaturedImage{}).Where("is_active = ?", true).Update("is_active", false).Error
}
