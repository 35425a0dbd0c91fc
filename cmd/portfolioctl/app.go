package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/backup"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/config"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/db"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/logging"
	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// app holds the components shared by the server and the catalog commands.
type app struct {
	cfg *config.PortfolioConfig
	log *zap.Logger
	db  *gorm.DB

	images     *gormstore.ImagesStore
	categories *gormstore.CategoriesStore
	storage    storage.Storage
	tagger     *tagging.Tagger
	ingest     *ingest.Service
	backups    *backup.Service
	audit      *audit.Logger

	auditStore *audit.Store
}

// newApp loads configuration, connects to the catalog and builds the
// services. The default category is created when missing.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Connect(db.Config{Debug: logging.Debug()})
	if err != nil {
		return nil, err
	}

	st, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		log:        log,
		db:         database,
		images:     gormstore.NewImagesStore(database),
		categories: gormstore.NewCategoriesStore(database),
		storage:    st,
	}
	a.tagger = tagging.New(a.categories, log)
	if _, err := a.tagger.EnsureDefaultCategory(cfg.DefaultCategory); err != nil {
		return nil, fmt.Errorf("failed to ensure default category: %w", err)
	}
	a.ingest = ingest.New(ingest.Config{
		AllowedExtensions: cfg.AllowedExtensions,
		MaxUploadSize:     cfg.MaxUploadSize,
	}, st, a.images, a.tagger, log)
	a.backups = backup.New(gormstore.NewBackupsStore(database), st, cfg.BackupDir, log)

	if err := a.openAudit(); err != nil {
		return nil, err
	}
	return a, nil
}

// openAudit writes audit lines to stdout and, when AUDIT_DATABASE_URL is
// set, persists them.
func (a *app) openAudit() error {
	if !audit.IsEnabled() {
		return nil
	}
	a.audit = audit.NewLogger(os.Stdout).WithErrorLog(a.log)

	auditStore, err := audit.NewStore(os.Getenv(audit.EnvDatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to open audit database: %w", err)
	}
	if auditStore != nil {
		a.auditStore = auditStore
		a.audit = a.audit.WithStore(auditStore)
	}
	return nil
}

func (a *app) close() {
	if a.auditStore != nil {
		_ = a.auditStore.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}

// newStorage builds the storage driver selected by the configuration.
func newStorage(ctx context.Context, cfg *config.PortfolioConfig) (storage.Storage, error) {
	s3cfg := storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Prefix:    "photography-assets/",
	}

	switch cfg.StorageDriver {
	case config.StorageDriverS3:
		st, err := storage.NewS3(ctx, s3cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 storage: %w", err)
		}
		return st, nil
	case config.StorageDriverMinio:
		st, err := storage.NewMinio(s3cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create minio storage: %w", err)
		}
		return st, nil
	default:
		st, err := storage.NewLocal(cfg.StorageRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return st, nil
	}
}

// fail prints msg and err to stderr and exits with status 1.
func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
