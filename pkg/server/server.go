package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/config"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/contact"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/middleware"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// Ingester stores uploads and removes images.
type Ingester interface {
	IngestBatch(ctx context.Context, uploads []ingest.Upload, opts ingest.Options) []ingest.Result
	Remove(ctx context.Context, imageID uint) (*model.Image, error)
}

// Tagger manages categories and image tagging.
type Tagger interface {
	AddCategory(imageID, categoryID uint) error
	RemoveCategory(imageID, categoryID uint) error
	SetCategories(imageID uint, categoryIDs []uint) error
	CreateCategory(in tagging.NewCategory) (*model.Category, error)
	RenameCategory(categoryID uint, newName string) (*model.Category, error)
	DeleteCategory(categoryID uint) ([]uint, error)
	DefaultCategory() (*model.Category, error)
	SetDefaultCategory(categoryID uint) error
}

// Backups creates and restores backup archives.
type Backups interface {
	Create(ctx context.Context, kind string) (*model.Backup, error)
	Restore(ctx context.Context, path string) (*model.Backup, error)
	List() ([]model.Backup, error)
	Path(id uint) (string, error)
}

// ContactRelay accepts contact form submissions.
type ContactRelay interface {
	Submit(ctx context.Context, in contact.Inquiry) (*model.ContactMessage, error)
}

// Sessions issues admin session tokens.
type Sessions interface {
	Issue(username string) (string, time.Time, error)
}

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.PortfolioConfig
	Log    *zap.Logger
	Audit  *audit.Logger

	ImagesStore      store.ImagesStore
	CategoriesStore  store.CategoriesStore
	FeaturedStore    store.FeaturedStore
	BackgroundsStore store.BackgroundsStore
	ContactsStore    store.ContactsStore
	SettingsStore    store.SettingsStore
	HealthStore      store.HealthStore

	Storage        storage.Storage
	Ingest         Ingester
	Tagger         Tagger
	Backups        Backups
	Contact        ContactRelay
	Authenticators *authenticator.Registry
	Sessions       Sessions
	AuthMiddleware *middleware.SessionAuthenticator

	srv *http.Server
}

// NewServer creates a server listening on host:port. Components are
// assigned by the caller before endpoints are registered.
func NewServer(cfg *config.PortfolioConfig, db *gorm.DB, log *zap.Logger, host string, port string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	router := mux.NewRouter()

	s := &Server{
		Router: router,
		DB:     db,
		Config: cfg,
		Log:    log,
	}
	s.srv = &http.Server{
		Handler:           s.Handler(os.Stdout),
		Addr:              host + ":" + port,
		ReadHeaderTimeout: 15 * time.Second,
		// uploads and backup downloads can be large
		WriteTimeout: 5 * time.Minute,
		ReadTimeout:  5 * time.Minute,
	}
	return s
}

// Handler wraps the router with access logging to w and, when origins are
// configured, CORS.
func (s *Server) Handler(w io.Writer) http.Handler {
	var h http.Handler = s.Router
	if s.Config != nil && len(s.Config.CORSAllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.Config.CORSAllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(h)
	}
	return handlers.LoggingHandler(w, h)
}

func (s *Server) Start() error {
	s.Log.Info("listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
