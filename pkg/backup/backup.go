package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
)

const (
	catalogEntry = "catalog.json"
	assetsDir    = "photography-assets/"
	namePrefix   = "portfolio_backup_"
	nameLayout   = "20060102_150405"
)

var (
	// ErrInvalidArchive is returned for archives that are not portfolio backups.
	ErrInvalidArchive = errors.New("invalid backup archive")

	// ErrBackupFailed wraps every failure while writing an archive.
	ErrBackupFailed = errors.New("backup failed")
)

// Service creates and restores backups.
type Service struct {
	store   store.BackupsStore
	storage storage.Storage
	dir     string
	log     *zap.Logger
	now     func() time.Time
}

// New returns a Service writing archives into dir.
func New(s store.BackupsStore, st storage.Storage, dir string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   s,
		storage: st,
		dir:     dir,
		log:     log,
		now:     time.Now,
	}
}

// Dir returns the backup directory.
func (s *Service) Dir() string {
	return s.dir
}

// List returns recorded backups, newest first.
func (s *Service) List() ([]model.Backup, error) {
	return s.store.ListBackups()
}

// Path returns the archive path of the recorded backup id.
func (s *Service) Path(id uint) (string, error) {
	b, err := s.store.GetBackup(id)
	if err != nil {
		return "", err
	}
	if b.Status != model.BackupSuccess {
		return "", fmt.Errorf("%w: backup %d did not complete", store.ErrNotFound, id)
	}
	if err := storage.ValidateName(b.Filename); err != nil {
		return "", err
	}
	p := filepath.Join(s.dir, b.Filename)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: archive %s", store.ErrNotFound, b.Filename)
		}
		return "", err
	}
	return p, nil
}

// Create writes a new archive of kind model.BackupManual or
// model.BackupAutomatic and records it.
func (s *Service) Create(ctx context.Context, kind string) (*model.Backup, error) {
	if kind != model.BackupManual && kind != model.BackupAutomatic {
		return nil, fmt.Errorf("%w: unknown backup type %q", store.ErrInvalidInput, kind)
	}

	record := &model.Backup{Type: kind, Status: model.BackupFailed}
	size, name, err := s.write(ctx)
	record.Filename = name
	if err != nil {
		if rerr := s.store.RecordBackup(record); rerr != nil {
			s.log.Error("failed to record failed backup", zap.Error(rerr))
		}
		return nil, fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}

	record.Status = model.BackupSuccess
	record.SizeBytes = size
	if err := s.store.RecordBackup(record); err != nil {
		return nil, fmt.Errorf("failed to record backup %s: %w", name, err)
	}

	s.log.Info("backup created",
		zap.String("filename", name),
		zap.String("type", kind),
		zap.Int64("size", size))
	return record, nil
}

func (s *Service) archiveName() (string, error) {
	base := namePrefix + s.now().UTC().Format(nameLayout)
	name := base + ".zip"
	for i := 1; ; i++ {
		_, err := os.Stat(filepath.Join(s.dir, name))
		if errors.Is(err, os.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		name = fmt.Sprintf("%s_%d.zip", base, i)
	}
}

func (s *Service) write(ctx context.Context) (int64, string, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return 0, "", err
	}
	name, err := s.archiveName()
	if err != nil {
		return 0, "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".backup-*")
	if err != nil {
		return 0, name, err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if err := s.writeArchive(ctx, tmp); err != nil {
		_ = tmp.Close()
		return 0, name, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return 0, name, err
	}
	info, err := tmp.Stat()
	if err != nil {
		_ = tmp.Close()
		return 0, name, err
	}
	if err := tmp.Close(); err != nil {
		return 0, name, err
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return 0, name, err
	}
	tmpName = ""
	return info.Size(), name, nil
}

func (s *Service) writeArchive(ctx context.Context, w io.Writer) error {
	snapshot, err := s.store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot catalog: %w", err)
	}
	snapshot.CreatedAt = s.now().UTC()

	zw := zip.NewWriter(w)

	cw, err := zw.Create(catalogEntry)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return err
	}

	names, err := s.storage.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored files: %w", err)
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.addAsset(ctx, zw, name); err != nil {
			return fmt.Errorf("failed to archive %s: %w", name, err)
		}
	}

	return zw.Close()
}

func (s *Service) addAsset(ctx context.Context, zw *zip.Writer, name string) error {
	rc, err := s.storage.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	// images are already compressed
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     assetsDir + name,
		Method:   zip.Store,
		Modified: s.now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, rc)
	return err
}

// Restore replaces the portfolio with the content of the archive at path.
// It returns the safety backup taken beforehand.
func (s *Service) Restore(ctx context.Context, path string) (*model.Backup, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		// insecure entry paths come back with an open reader
		if zr != nil {
			_ = zr.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer zr.Close()

	snapshot, assets, err := readArchive(&zr.Reader)
	if err != nil {
		return nil, err
	}

	safety, err := s.Create(ctx, model.BackupAutomatic)
	if err != nil {
		return nil, fmt.Errorf("refusing to restore without a safety backup: %w", err)
	}

	for name, f := range assets {
		if err := s.restoreAsset(ctx, name, f); err != nil {
			return safety, fmt.Errorf("failed to restore %s: %w", name, err)
		}
	}

	if err := s.store.RestoreSnapshot(snapshot); err != nil {
		return safety, fmt.Errorf("failed to restore catalog: %w", err)
	}

	s.log.Info("backup restored",
		zap.String("archive", filepath.Base(path)),
		zap.String("safety_backup", safety.Filename),
		zap.Int("images", len(snapshot.Images)),
		zap.Int("assets", len(assets)))
	return safety, nil
}

func (s *Service) restoreAsset(ctx context.Context, name string, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = s.storage.Write(ctx, name, rc)
	return err
}

// readArchive parses and validates the catalog and asset entries of zr.
func readArchive(zr *zip.Reader) (*model.Snapshot, map[string]*zip.File, error) {
	var catalog *zip.File
	assets := make(map[string]*zip.File)

	for _, f := range zr.File {
		switch {
		case f.Name == catalogEntry:
			catalog = f
		case f.Name == assetsDir || f.FileInfo().IsDir():
		case strings.HasPrefix(f.Name, assetsDir):
			name := strings.TrimPrefix(f.Name, assetsDir)
			if err := storage.ValidateName(name); err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
			}
			assets[name] = f
		}
	}
	if catalog == nil {
		return nil, nil, fmt.Errorf("%w: missing %s", ErrInvalidArchive, catalogEntry)
	}

	rc, err := catalog.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer rc.Close()

	var snapshot model.Snapshot
	if err := json.NewDecoder(rc).Decode(&snapshot); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, catalogEntry, err)
	}
	if snapshot.Version != model.SnapshotVersion {
		return nil, nil, fmt.Errorf("%w: unsupported catalog version %d", ErrInvalidArchive, snapshot.Version)
	}
	return &snapshot, assets, nil
}
