package gorm

import (
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure SettingsStore implements store.SettingsStore
var _ store.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements store.SettingsStore using GORM
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) ListSettings() ([]model.Setting, error) {
	var settings []model.Setting
	if err := s.db.Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsStore) GetSetting(key string) (string, error) {
	var setting model.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return "", notFound(err)
	}
	return setting.Value, nil
}

func (s *SettingsStore) SetSetting(key, value string) error {
	return upsertSetting(s.db, key, value)
}

func upsertSetting(db *gorm.DB, key, value string) error {
	tx := db.Model(&model.Setting{}).Where("key = ?", key).Update("value", value)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		return nil
	}
	return db.Create(&model.Setting{Key: key, Value: value}).Error
}
