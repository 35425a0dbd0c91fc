package gorm

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/db"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
)

// setupTestDB opens a fresh sqlite catalog in a temp dir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Connect(db.Config{URL: db.SQLitePrefix + filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

// setupMockDB returns a postgres-dialect gorm.DB backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)
	return gormDB, mock
}

func createCategory(t *testing.T, s *CategoriesStore, name, slug string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Slug: slug, IsActive: true}
	require.NoError(t, s.CreateCategory(c))
	return c
}

func createImage(t *testing.T, s *ImagesStore, filename string, categoryIDs ...uint) *model.Image {
	t.Helper()
	img := &model.Image{
		Filename:     filename,
		Title:        filename,
		DateUploaded: time.Now().UTC(),
		IsActive:     true,
	}
	require.NoError(t, s.CreateImage(img, categoryIDs))
	return img
}
