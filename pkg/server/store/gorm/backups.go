package gorm

import (
	"fmt"
	"time"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure BackupsStore implements store.BackupsStore
var _ store.BackupsStore = (*BackupsStore)(nil)

// BackupsStore implements store.BackupsStore using GORM
type BackupsStore struct {
	db *gorm.DB
}

// NewBackupsStore creates a new BackupsStore
func NewBackupsStore(db *gorm.DB) *BackupsStore {
	return &BackupsStore{db: db}
}

func (s *BackupsStore) RecordBackup(b *model.Backup) error {
	return s.db.Create(b).Error
}

func (s *BackupsStore) ListBackups() ([]model.Backup, error) {
	var backups []model.Backup
	if err := s.db.Order("created_at DESC, id DESC").Find(&backups).Error; err != nil {
		return nil, err
	}
	return backups, nil
}

func (s *BackupsStore) GetBackup(id uint) (*model.Backup, error) {
	var b model.Backup
	if err := s.db.Where("id = ?", id).First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *BackupsStore) Snapshot() (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Version:   model.SnapshotVersion,
		CreatedAt: time.Now().UTC(),
	}
	queries := []struct {
		dest  interface{}
		order string
	}{
		{&snap.Categories, "id"},
		{&snap.Images, "id"},
		{&snap.ImageCategories, "image_id, category_id"},
		{&snap.FeaturedImages, "id"},
		{&snap.Backgrounds, "id"},
		{&snap.Settings, "id"},
	}
	for _, q := range queries {
		if err := s.db.Order(q.order).Find(q.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
	}
	return snap, nil
}

func (s *BackupsStore) RestoreSnapshot(snap *model.Snapshot) error {
	if snap.Version != model.SnapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %d", store.ErrInvalidInput, snap.Version)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// children first
		for _, m := range []interface{}{
			&model.ImageCategory{}, &model.FeaturedImage{}, &model.BackgroundSetting{},
			&model.Image{}, &model.Category{}, &model.Setting{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear catalog: %w", err)
			}
		}

		inserts := []struct {
			rows interface{}
			n    int
		}{
			{snap.Categories, len(snap.Categories)},
			{snap.Images, len(snap.Images)},
			{snap.ImageCategories, len(snap.ImageCategories)},
			{snap.FeaturedImages, len(snap.FeaturedImages)},
			{snap.Backgrounds, len(snap.Backgrounds)},
			{snap.Settings, len(snap.Settings)},
		}
		for _, ins := range inserts {
			if ins.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(ins.rows, 100).Error; err != nil {
				return fmt.Errorf("failed to restore catalog: %w", err)
			}
		}
		return resetSequences(tx)
	})
}

// resetSequences moves postgres id sequences past the restored ids.
func resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"categories", "images", "featured_images", "background_settings", "settings"} {
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
			table, table,
		)
		if err := tx.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}
