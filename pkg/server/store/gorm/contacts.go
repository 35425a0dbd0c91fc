package gorm

import (
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure ContactsStore implements store.ContactsStore
var _ store.ContactsStore = (*ContactsStore)(nil)

// ContactsStore implements store.ContactsStore using GORM
type ContactsStore struct {
	db *gorm.DB
}

// NewContactsStore creates a new ContactsStore
func NewContactsStore(db *gorm.DB) *ContactsStore {
	return &ContactsStore{db: db}
}

func (s *ContactsStore) CreateMessage(m *model.ContactMessage) error {
	return s.db.Create(m).Error
}

func (s *ContactsStore) ListMessages() ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := s.db.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *ContactsStore) MarkMessageRead(id uint) error {
	tx := s.db.Model(&model.ContactMessage{}).Where("id = ?", id).Update("is_read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ContactsStore) DeleteMessage(id uint) error {
	tx := s.db.Delete(&model.ContactMessage{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
