package legacy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
)

// Categories creates categories on first use and supplies the default one.
type Categories interface {
	EnsureCategory(name string) (*model.Category, error)
	DefaultCategory() (*model.Category, error)
}

// Report summarizes an import run.
type Report struct {
	Imported []string
	Skipped  []string
	// Failed maps a filename to why it was not imported
	Failed map[string]string
}

// Importer loads a legacy document into the catalog.
type Importer struct {
	images     store.ImagesStore
	categories Categories
	storage    storage.Storage
	log        *zap.Logger
	now        func() time.Time
}

// NewImporter creates an Importer.
func NewImporter(images store.ImagesStore, categories Categories, st storage.Storage, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		images:     images,
		categories: categories,
		storage:    st,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Import catalogs every entry of doc, reading asset files from assetsDir.
// Per-entry problems are collected in the Report; the returned error is
// reserved for failures that stop the run.
func (im *Importer) Import(ctx context.Context, doc *Document, assetsDir string) (*Report, error) {
	report := &Report{Failed: map[string]string{}}

	for _, entry := range doc.Images {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := strings.TrimSpace(entry.Filename)
		if name == "" {
			continue
		}
		if err := storage.ValidateName(name); err != nil {
			report.Failed[name] = err.Error()
			continue
		}

		_, err := im.images.GetImageByFilename(name)
		if err == nil {
			im.log.Info("image already catalogued, skipping", zap.String("filename", name))
			report.Skipped = append(report.Skipped, name)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return report, err
		}

		if err := im.importEntry(ctx, name, entry, assetsDir); err != nil {
			var fatal fatalError
			if errors.As(err, &fatal) {
				return report, fatal.err
			}
			im.log.Warn("failed to import image", zap.String("filename", name), zap.Error(err))
			report.Failed[name] = err.Error()
			continue
		}
		im.log.Info("imported image", zap.String("filename", name))
		report.Imported = append(report.Imported, name)
	}
	return report, nil
}

type fatalError struct{ err error }

func (f fatalError) Error() string { return f.err.Error() }

func (im *Importer) importEntry(ctx context.Context, name string, entry Entry, assetsDir string) error {
	if err := im.copyAsset(ctx, name, assetsDir); err != nil {
		return err
	}

	categoryIDs, err := im.categoryIDs(entry.Categories)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = "Untitled"
	}
	mk, camModel := entry.cameraMakeModel()
	img := &model.Image{
		Filename:     name,
		Title:        title,
		Description:  strings.TrimSpace(entry.Description),
		CameraMake:   mk,
		CameraModel:  camModel,
		Lens:         strings.TrimSpace(entry.Lens),
		Aperture:     strings.TrimSpace(entry.Aperture),
		ShutterSpeed: strings.TrimSpace(entry.ShutterSpeed),
		ISO:          int(entry.ISO),
		FocalLength:  strings.TrimSpace(entry.FocalLength),
		Location:     strings.TrimSpace(entry.Location),
		DateUploaded: im.now(),
		IsActive:     true,
	}
	if err := im.images.CreateImage(img, categoryIDs); err != nil {
		return fatalError{fmt.Errorf("failed to catalog %s: %w", name, err)}
	}
	return nil
}

func (im *Importer) copyAsset(ctx context.Context, name, assetsDir string) error {
	exists, err := im.storage.Exists(ctx, name)
	if err != nil {
		return fatalError{err}
	}
	if exists {
		return nil
	}

	f, err := os.Open(filepath.Join(assetsDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("asset file not found in %s", assetsDir)
		}
		return err
	}
	defer f.Close()

	if _, err := im.storage.Write(ctx, name, f); err != nil {
		return fatalError{fmt.Errorf("failed to store %s: %w", name, err)}
	}
	return nil
}

func (im *Importer) categoryIDs(names []string) ([]uint, error) {
	var ids []uint
	for _, n := range names {
		c, err := im.categories.EnsureCategory(n)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", n, err)
		}
		ids = append(ids, c.ID)
	}
	if len(ids) == 0 {
		c, err := im.categories.DefaultCategory()
		if err != nil {
			return nil, fatalError{err}
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}
