package gorm

import (
	"fmt"
	"sort"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure ImagesStore implements store.ImagesStore
var _ store.ImagesStore = (*ImagesStore)(nil)

// ImagesStore implements store.ImagesStore using GORM
type ImagesStore struct {
	db *gorm.DB
}

// NewImagesStore creates a new ImagesStore
func NewImagesStore(db *gorm.DB) *ImagesStore {
	return &ImagesStore{db: db}
}

func (s *ImagesStore) CreateImage(img *model.Image, categoryIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(img).Error; err != nil {
			return fmt.Errorf("failed to create image: %w", err)
		}

		seen := make(map[uint]bool, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			if seen[categoryID] {
				continue
			}
			seen[categoryID] = true

			var count int64
			if err := tx.Model(&model.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("category %d: %w", categoryID, store.ErrNotFound)
			}
			if err := tx.Create(&model.ImageCategory{ImageID: img.ID, CategoryID: categoryID}).Error; err != nil {
				return err
			}
		}

		categories, err := loadCategories(tx, []uint{img.ID})
		if err != nil {
			return err
		}
		img.Categories = categories[img.ID]
		return nil
	})
}

func (s *ImagesStore) GetImage(id uint) (*model.Image, error) {
	return s.first(s.db.Where("id = ?", id))
}

func (s *ImagesStore) GetImageByFilename(filename string) (*model.Image, error) {
	return s.first(s.db.Where("filename = ?", filename))
}

func (s *ImagesStore) first(query *gorm.DB) (*model.Image, error) {
	var img model.Image
	if err := query.First(&img).Error; err != nil {
		return nil, notFound(err)
	}
	categories, err := loadCategories(s.db, []uint{img.ID})
	if err != nil {
		return nil, err
	}
	img.Categories = categories[img.ID]
	return &img, nil
}

func (s *ImagesStore) ListImages(filter store.ImageFilter) ([]model.Image, error) {
	query := s.db.Model(&model.Image{})
	if filter.ActiveOnly {
		query = query.Where("images.is_active = ?", true)
	}
	if filter.CategorySlug != "" {
		query = query.
			Select("images.*").
			Joins("JOIN image_categories ON image_categories.image_id = images.id").
			Joins("JOIN categories ON categories.id = image_categories.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	var images []model.Image
	if err := query.Order("images.date_uploaded DESC, images.id DESC").Find(&images).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, len(images))
	for i := range images {
		ids[i] = images[i].ID
	}
	categories, err := loadCategories(s.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].Categories = categories[images[i].ID]
	}
	return images, nil
}

func (s *ImagesStore) UpdateImage(id uint, update store.ImageUpdate) (*model.Image, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Location != nil {
		fields["location"] = *update.Location
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}

	if _, err := s.GetImage(id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.Model(&model.Image{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.GetImage(id)
}

func (s *ImagesStore) DeleteImage(id uint) (*model.Image, error) {
	img, err := s.GetImage(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&model.ImageCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", id).Delete(&model.FeaturedImage{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.BackgroundSetting{}).Where("image_id = ?", id).Update("image_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Image{}, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete image %d: %w", id, err)
	}
	return img, nil
}

func (s *ImagesStore) IncrementViewCount(id uint) error {
	tx := s.db.Model(&model.Image{}).Where("id = ?", id).Update("view_count", gorm.Expr("view_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type imageCategoryRow struct {
	ImageID uint
	model.Category
}

// loadCategories returns the categories of each image, ordered by display
// order then name.
func loadCategories(db *gorm.DB, imageIDs []uint) (map[uint][]model.Category, error) {
	result := make(map[uint][]model.Category, len(imageIDs))
	if len(imageIDs) == 0 {
		return result, nil
	}

	var rows []imageCategoryRow
	err := db.Table("categories").
		Select("image_categories.image_id, categories.*").
		Joins("JOIN image_categories ON image_categories.category_id = categories.id").
		Where("image_categories.image_id IN ?", imageIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load image categories: %w", err)
	}

	for _, row := range rows {
		result[row.ImageID] = append(result[row.ImageID], row.Category)
	}
	for id := range result {
		sortCategories(result[id])
	}
	return result, nil
}

func sortCategories(categories []model.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].Name < categories[j].Name
	})
}
