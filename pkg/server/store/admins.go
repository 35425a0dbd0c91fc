package store

import (
	"time"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
)

// AdminsStore abstracts administrator account operations
type AdminsStore interface {
	// GetAdmin returns ErrNotFound if username doesn't exist.
	GetAdmin(username string) (*model.AdminUser, error)

	// CreateAdmin returns ErrAlreadyExists if username is taken.
	CreateAdmin(username string, passwordHash []byte) error

	UpdateAdminPassword(username string, passwordHash []byte) error

	RecordLogin(username string, at time.Time) error
}
