package gorm

import (
	"fmt"
	"time"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure AdminsStore implements store.AdminsStore
var _ store.AdminsStore = (*AdminsStore)(nil)

// AdminsStore implements store.AdminsStore using GORM
type AdminsStore struct {
	db *gorm.DB
}

// NewAdminsStore creates a new AdminsStore
func NewAdminsStore(db *gorm.DB) *AdminsStore {
	return &AdminsStore{db: db}
}

func (s *AdminsStore) GetAdmin(username string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *AdminsStore) CreateAdmin(username string, passwordHash []byte) error {
	var count int64
	if err := s.db.Model(&model.AdminUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("admin %q: %w", username, store.ErrAlreadyExists)
	}
	return s.db.Create(&model.AdminUser{Username: username, PasswordHash: passwordHash}).Error
}

func (s *AdminsStore) UpdateAdminPassword(username string, passwordHash []byte) error {
	return s.update(username, "password_hash", passwordHash)
}

func (s *AdminsStore) RecordLogin(username string, at time.Time) error {
	return s.update(username, "last_login_at", at)
}

func (s *AdminsStore) update(username, column string, value interface{}) error {
	tx := s.db.Model(&model.AdminUser{}).Where("username = ?", username).Update(column, value)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
