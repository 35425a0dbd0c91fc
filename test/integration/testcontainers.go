package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/session"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/backup"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/config"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/contact"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/db"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/endpoints"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/middleware"
	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// jwtSecret signs admin sessions in both modes.
const jwtSecret = "integration-session-secret-0123456789"

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	RawDB         *sql.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string
	AssetsDir     string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *httptest.Server
}

// NewTestContext creates a new test context with a PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set PORTFOLIO_BINARY to the path of the portfolioctl binary
//   - Inline mode: Set PORTFOLIO_INLINE=1 to run the server in-process (no binary needed)
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	inlineMode := os.Getenv("PORTFOLIO_INLINE") == "1"
	binaryPath := os.Getenv("PORTFOLIO_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either PORTFOLIO_BINARY or PORTFOLIO_INLINE=1 is required.\n\nBinary mode:\n  go build -o portfolioctl ./cmd/portfolioctl\n  INTEGRATION_TEST=1 PORTFOLIO_BINARY=$(pwd)/portfolioctl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 PORTFOLIO_INLINE=1 go test -v ./test/integration/...")
	}
	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("PORTFOLIO_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("portfolio_test"),
		tcpostgres.WithUsername("portfolio"),
		tcpostgres.WithPassword("portfolio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	rawDB, err := database.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	if err := runMigrations(rawDB, migrationsDir); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	assetsDir, err := os.MkdirTemp("", "portfolio-assets-")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	tc := &TestContext{
		DB:          database,
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
		AssetsDir:   assetsDir,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}

	if inlineMode {
		tc.InlineServer, err = startInlineServer(database, assetsDir)
		if err != nil {
			tc.Close(ctx)
			return nil, fmt.Errorf("failed to start inline server: %w", err)
		}
		tc.ServerURL = tc.InlineServer.URL
	} else {
		port := "18080"
		tc.ServerURL = "http://127.0.0.1:" + port
		tc.ServerProcess, tc.Cancel, err = startBinary(binaryPath, connStr, assetsDir, port)
		if err != nil {
			tc.Close(ctx)
			return nil, fmt.Errorf("failed to start server binary: %w", err)
		}
	}

	if err := waitForServer(tc.ServerURL, 30*time.Second); err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return tc, nil
}

// startInlineServer wires the server the same way the server command does
// and serves it from an httptest server.
func startInlineServer(database *gorm.DB, assetsDir string) (*httptest.Server, error) {
	cfg := config.New()
	cfg.StorageRoot = assetsDir
	cfg.BackupDir = filepath.Join(assetsDir, "backups")
	log := zap.NewNop()

	local, err := storage.NewLocal(assetsDir)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewManager([]byte(jwtSecret), cfg.TokenTTL())
	if err != nil {
		return nil, err
	}

	images := gormstore.NewImagesStore(database)
	categories := gormstore.NewCategoriesStore(database)
	contacts := gormstore.NewContactsStore(database)
	health := gormstore.NewHealthStore(database)

	tagger := tagging.New(categories, log)
	if _, err := tagger.EnsureDefaultCategory(cfg.DefaultCategory); err != nil {
		return nil, err
	}

	s := server.NewServer(cfg, database, log, "127.0.0.1", "0")
	s.ImagesStore = images
	s.CategoriesStore = categories
	s.FeaturedStore = gormstore.NewFeaturedStore(database)
	s.BackgroundsStore = gormstore.NewBackgroundsStore(database)
	s.ContactsStore = contacts
	s.SettingsStore = gormstore.NewSettingsStore(database)
	s.HealthStore = health
	s.Storage = local
	s.Ingest = ingest.New(ingest.Config{
		AllowedExtensions: cfg.AllowedExtensions,
		MaxUploadSize:     cfg.MaxUploadSize,
	}, local, images, tagger, log)
	s.Tagger = tagger
	s.Backups = backup.New(gormstore.NewBackupsStore(database), local, cfg.BackupDir, log)
	s.Contact = contact.NewRelay(contacts, nil, "", "", log)
	s.Authenticators = authenticator.NewRegistry(authn.NewPasswordAuthenticator(gormstore.NewAdminsStore(database), health))
	s.Sessions = sessions
	s.AuthMiddleware = middleware.NewSessionAuthenticator(sessions)
	endpoints.RegisterAll(s)

	return httptest.NewServer(s.Handler(io.Discard)), nil
}

// startBinary starts the portfolioctl server binary
func startBinary(binaryPath, dbURL, assetsDir, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// migrations already ran in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"PORTFOLIO_JWT_SECRET="+jwtSecret,
		"PORTFOLIO_STORAGE_DRIVER=local",
		"PORTFOLIO_STORAGE_ROOT="+assetsDir,
		"PORTFOLIO_BACKUP_DIR="+filepath.Join(assetsDir, "backups"),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}
	return cmd, cancel, nil
}

// waitForServer polls /status until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/status")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Reset empties the catalog between scenarios, keeping the default category.
func (tc *TestContext) Reset() error {
	for _, stmt := range []string{
		"DELETE FROM image_categories",
		"DELETE FROM featured_images",
		"DELETE FROM background_settings",
		"DELETE FROM images",
		"DELETE FROM contact_messages",
		"DELETE FROM admin_users",
		`DELETE FROM categories WHERE id NOT IN (SELECT CAST(value AS INTEGER) FROM settings WHERE key = 'default_category_id')`,
	} {
		if err := tc.DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.InlineServer != nil {
		tc.InlineServer.Close()
	}
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.AssetsDir != "" {
		_ = os.RemoveAll(tc.AssetsDir)
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	for _, p := range []string{"../..", "..", "."} {
		if _, err := os.Stat(filepath.Join(p, "go.mod")); err == nil {
			return filepath.Abs(p)
		}
	}
	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// runMigrations applies the up migrations in migrationsDir
func runMigrations(rawDB *sql.DB, migrationsDir string) error {
	driver, err := migratepostgres.WithInstance(rawDB, &migratepostgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
