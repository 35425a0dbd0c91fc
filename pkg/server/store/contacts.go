package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// ContactsStore abstracts contact message operations
type ContactsStore interface {
	CreateMessage(m *model.ContactMessage) error

	// ListMessages returns messages newest first.
	ListMessages() ([]model.ContactMessage, error)

	MarkMessageRead(id uint) error

	DeleteMessage(id uint) error
}
