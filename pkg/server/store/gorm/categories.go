package gorm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure CategoriesStore implements store.CategoriesStore and store.TagsStore
var (
	_ store.CategoriesStore = (*CategoriesStore)(nil)
	_ store.TagsStore       = (*CategoriesStore)(nil)
)

// CategoriesStore implements store.CategoriesStore and store.TagsStore using GORM
type CategoriesStore struct {
	db *gorm.DB
}

// NewCategoriesStore creates a new CategoriesStore
func NewCategoriesStore(db *gorm.DB) *CategoriesStore {
	return &CategoriesStore{db: db}
}

func (s *CategoriesStore) Transaction(fn func(tx store.TagsStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&CategoriesStore{db: tx})
	})
}

func (s *CategoriesStore) ListCategories(activeOnly bool) ([]model.Category, error) {
	query := s.db.Order("display_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var categories []model.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoriesStore) GetCategory(id uint) (*model.Category, error) {
	var c model.Category
	if err := s.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *CategoriesStore) GetCategoryBySlug(slug string) (*model.Category, error) {
	var c model.Category
	if err := s.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// slugTaken reports whether a category other than exceptID uses slug.
func (s *CategoriesStore) slugTaken(slug string, exceptID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Category{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&count).Error
	return count > 0, err
}

func (s *CategoriesStore) CreateCategory(c *model.Category) error {
	if c.Slug == "" || c.Name == "" {
		return fmt.Errorf("%w: category name and slug are required", store.ErrInvalidInput)
	}
	taken, err := s.slugTaken(c.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", store.ErrDuplicateSlug, c.Slug)
	}
	if c.ColorCode == "" {
		c.ColorCode = model.DefaultCategoryColor
	}
	return s.db.Create(c).Error
}

func (s *CategoriesStore) RenameCategory(id uint, name, slug string) (*model.Category, error) {
	if slug == "" || name == "" {
		return nil, fmt.Errorf("%w: category name and slug are required", store.ErrInvalidInput)
	}
	if _, err := s.GetCategory(id); err != nil {
		return nil, err
	}
	taken, err := s.slugTaken(slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateSlug, slug)
	}
	err = s.db.Model(&model.Category{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "slug": slug}).Error
	if err != nil {
		return nil, err
	}
	return s.GetCategory(id)
}

func (s *CategoriesStore) UpdateCategory(id uint, update store.CategoryUpdate) (*model.Category, error) {
	fields := map[string]interface{}{}
	if update.ColorCode != nil {
		fields["color_code"] = *update.ColorCode
	}
	if update.DisplayOrder != nil {
		fields["display_order"] = *update.DisplayOrder
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}

	if _, err := s.GetCategory(id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.Model(&model.Category{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCategory(id)
}

func (s *CategoriesStore) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.ImageCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}

func (s *CategoriesStore) ImageExists(imageID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Image{}).Where("id = ?", imageID).Count(&count).Error
	return count > 0, err
}

func (s *CategoriesStore) HasTag(imageID, categoryID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.ImageCategory{}).
		Where("image_id = ? AND category_id = ?", imageID, categoryID).
		Count(&count).Error
	return count > 0, err
}

func (s *CategoriesStore) AddTag(imageID, categoryID uint) error {
	exists, err := s.HasTag(imageID, categoryID)
	if err != nil || exists {
		return err
	}
	return s.db.Create(&model.ImageCategory{ImageID: imageID, CategoryID: categoryID}).Error
}

func (s *CategoriesStore) RemoveTag(imageID, categoryID uint) (bool, error) {
	tx := s.db.Where("image_id = ? AND category_id = ?", imageID, categoryID).Delete(&model.ImageCategory{})
	return tx.RowsAffected > 0, tx.Error
}

func (s *CategoriesStore) CountTags(imageID uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.ImageCategory{}).Where("image_id = ?", imageID).Count(&count).Error
	return count, err
}

func (s *CategoriesStore) TaggedImages(categoryID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&model.ImageCategory{}).
		Where("category_id = ?", categoryID).
		Order("image_id").
		Pluck("image_id", &ids).Error
	return ids, err
}

func (s *CategoriesStore) ReplaceTags(imageID uint, categoryIDs []uint) error {
	if err := s.db.Where("image_id = ?", imageID).Delete(&model.ImageCategory{}).Error; err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		if err := s.AddTag(imageID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CategoriesStore) DefaultCategoryID() (uint, bool, error) {
	var setting model.Setting
	err := s.db.Where("key = ?", model.SettingDefaultCategoryID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	id, err := strconv.ParseUint(setting.Value, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (s *CategoriesStore) SetDefaultCategoryID(id uint) error {
	return upsertSetting(s.db, model.SettingDefaultCategoryID, strconv.FormatUint(uint64(id), 10))
}
