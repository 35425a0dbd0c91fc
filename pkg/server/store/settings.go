package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// SettingsStore abstracts free-form site settings
type SettingsStore interface {
	ListSettings() ([]model.Setting, error)

	// GetSetting returns ErrNotFound if key is unset.
	GetSetting(key string) (string, error)

	// SetSetting creates or replaces key.
	SetSetting(key, value string) error
}
