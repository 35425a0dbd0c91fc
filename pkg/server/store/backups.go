package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// BackupsStore abstracts backup bookkeeping and catalog snapshots
type BackupsStore interface {
	RecordBackup(b *model.Backup) error

	// ListBackups returns backups newest first.
	ListBackups() ([]model.Backup, error)

	GetBackup(id uint) (*model.Backup, error)

	// Snapshot reads the whole catalog.
	Snapshot() (*model.Snapshot, error)

	// RestoreSnapshot replaces the catalog with s in one transaction.
	// Backups and admin users are left alone.
	RestoreSnapshot(s *model.Snapshot) error
}
