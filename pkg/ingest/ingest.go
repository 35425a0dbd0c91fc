package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/exif"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
)

var (
	// ErrUnsupportedFormat is returned for file extensions outside the allow-list
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrPayloadTooLarge is returned for uploads above the configured size limit
	ErrPayloadTooLarge = errors.New("upload exceeds maximum size")

	// ErrStorage wraps storage failures; the catalog is left untouched
	ErrStorage = errors.New("storage error")
)

const (
	untitled      = "Untitled"
	batchFallback = "Image"
)

// CategoryResolver maps category names to ids and supplies the default category.
type CategoryResolver interface {
	ResolveNames(names []string) ([]uint, error)
	DefaultCategory() (*model.Category, error)
}

// Config is the ingestion policy.
type Config struct {
	// AllowedExtensions are lowercase extensions without the dot
	AllowedExtensions []string
	// MaxUploadSize is the largest accepted payload in bytes
	MaxUploadSize int64
}

// Upload is one file to ingest.
type Upload struct {
	// Filename is the caller's name for the file. Only its extension is used.
	Filename string
	Body     io.Reader
}

// Options apply to every file of a batch.
type Options struct {
	// Title is used as is for a single file and numbered for a batch.
	Title       string
	Description string
	// Categories are category names or slugs. Empty means the default category.
	Categories []string
	// Inactive ingests the images hidden from the public site.
	Inactive bool
}

// Result is the outcome for one file of a batch.
type Result struct {
	Filename string       `json:"filename"`
	Image    *model.Image `json:"image,omitempty"`
	Err      error        `json:"-"`
}

// Service ingests and removes images.
type Service struct {
	cfg        Config
	storage    storage.Storage
	images     store.ImagesStore
	categories CategoryResolver
	extractor  *exif.Extractor
	log        *zap.Logger

	newName func(ext string) string
	now     func() time.Time
}

// New returns an ingestion Service. A nil logger discards output.
func New(cfg Config, st storage.Storage, images store.ImagesStore, categories CategoryResolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:        cfg,
		storage:    st,
		images:     images,
		categories: categories,
		extractor:  exif.NewExtractor(log),
		log:        log,
		newName: func(ext string) string {
			return uuid.NewString() + "." + ext
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Ingest stores one file and creates its image row.
func (s *Service) Ingest(ctx context.Context, upload Upload, opts Options) (*model.Image, error) {
	return s.ingest(ctx, upload, opts, titleFor(opts.Title, 0, 1))
}

// IngestBatch ingests each upload independently. One file's failure does
// not stop the others.
func (s *Service) IngestBatch(ctx context.Context, uploads []Upload, opts Options) []Result {
	results := make([]Result, len(uploads))
	for i, upload := range uploads {
		img, err := s.ingest(ctx, upload, opts, titleFor(opts.Title, i, len(uploads)))
		results[i] = Result{Filename: upload.Filename, Image: img, Err: err}
		if err != nil {
			s.log.Warn("ingest failed", zap.String("file", upload.Filename), zap.Error(err))
		}
	}
	return results
}

// titleFor numbers titles from 1 when a batch has more than one file.
func titleFor(prefix string, index, total int) string {
	prefix = strings.TrimSpace(prefix)
	if total <= 1 {
		if prefix == "" {
			return untitled
		}
		return prefix
	}
	if prefix == "" {
		prefix = batchFallback
	}
	return fmt.Sprintf("%s %d", prefix, index+1)
}

// Extension returns the lowercase extension of filename if it is allowed.
func (s *Service) Extension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext != "" && ext == allowed {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

func (s *Service) ingest(ctx context.Context, upload Upload, opts Options, title string) (*model.Image, error) {
	ext, err := s.Extension(upload.Filename)
	if err != nil {
		return nil, err
	}

	categoryIDs, err := s.resolveCategories(opts.Categories)
	if err != nil {
		return nil, err
	}

	data, err := s.readPayload(upload.Body)
	if err != nil {
		return nil, err
	}

	name := s.newName(ext)
	if _, err := s.storage.Write(ctx, name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	meta := s.extractor.Extract(bytes.NewReader(data), name)
	img := &model.Image{
		Filename:     name,
		Title:        title,
		Description:  opts.Description,
		CameraMake:   meta.CameraMake,
		CameraModel:  meta.CameraModel,
		Lens:         meta.Lens,
		Aperture:     meta.Aperture,
		ShutterSpeed: meta.ShutterSpeed,
		ISO:          meta.ISO,
		FocalLength:  meta.FocalLength,
		Location:     meta.Location(),
		DateTaken:    meta.DateTaken,
		DateUploaded: s.now(),
		IsActive:     !opts.Inactive,
	}

	if err := s.images.CreateImage(img, categoryIDs); err != nil {
		s.compensate(name)
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	s.log.Info("image ingested",
		zap.Uint("image_id", img.ID),
		zap.String("file", name),
		zap.String("original", upload.Filename),
		zap.Bool("has_metadata", !meta.Empty()),
	)
	return img, nil
}

// compensate removes a stored file whose catalog row could not be created.
func (s *Service) compensate(name string) {
	// the request context may already be done
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.storage.Delete(ctx, name); err != nil {
		s.log.Error("failed to remove orphaned file", zap.String("file", name), zap.Error(err))
	}
}

func (s *Service) resolveCategories(names []string) ([]uint, error) {
	if len(names) > 0 {
		return s.categories.ResolveNames(names)
	}
	c, err := s.categories.DefaultCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default category: %w", err)
	}
	return []uint{c.ID}, nil
}

func (s *Service) readPayload(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: empty upload", ErrStorage)
	}
	limit := s.cfg.MaxUploadSize
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %v", ErrStorage, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, limit)
	}
	return data, nil
}

// Remove deletes the image row, then its file. A file that is already gone
// is not an error.
func (s *Service) Remove(ctx context.Context, imageID uint) (*model.Image, error) {
	img, err := s.images.DeleteImage(imageID)
	if err != nil {
		return nil, err
	}
	removed, err := s.storage.Delete(ctx, img.Filename)
	if err != nil {
		s.log.Error("image row deleted but file removal failed", zap.String("file", img.Filename), zap.Error(err))
		return img, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !removed {
		s.log.Warn("image file was already missing", zap.String("file", img.Filename))
	}
	s.log.Info("image removed", zap.Uint("image_id", imageID), zap.String("file", img.Filename))
	return img, nil
}
