package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// BackgroundsStore abstracts background setting operations
type BackgroundsStore interface {
	// GetBackground returns ErrNotFound if section has no setting.
	GetBackground(section string) (*model.BackgroundSetting, error)

	ListBackgrounds() ([]model.BackgroundSetting, error)

	// UpsertBackground creates or replaces the setting for b.Section.
	UpsertBackground(b *model.BackgroundSetting) error
}
