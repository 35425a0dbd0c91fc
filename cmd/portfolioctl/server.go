package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/session"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/contact"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/endpoints"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/middleware"
	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
)

// EnvJWTSecret holds the admin session signing secret.
const EnvJWTSecret = "PORTFOLIO_JWT_SECRET"

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the portfolio API server",
	Long: `Run the portfolio API server.

The server requires the environment variables DATABASE_URL and
PORTFOLIO_JWT_SECRET.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		secret, ok := os.LookupEnv(EnvJWTSecret)
		if !ok {
			fmt.Fprintln(os.Stderr, EnvJWTSecret+" environment variable is required")
			os.Exit(1)
		}
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			fmt.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fail("Migration failed", err)
			}
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		if err := runServer(cmd.Context(), []byte(secret), host, port); err != nil {
			fail("Server failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func runServer(ctx context.Context, secret []byte, host, port string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	sessions, err := session.NewManager(secret, a.cfg.TokenTTL())
	if err != nil {
		return err
	}

	admins := gormstore.NewAdminsStore(a.db)
	health := gormstore.NewHealthStore(a.db)
	contacts := gormstore.NewContactsStore(a.db)

	var mailer contact.Mailer
	if a.cfg.SMTPEnabled() {
		mailer = contact.NewSMTPMailer(a.cfg.SMTPHost, a.cfg.SMTPPort, a.cfg.SMTPUsername, a.cfg.SMTPPassword)
	} else {
		a.log.Info("smtp is not configured; contact messages are stored only")
	}

	s := server.NewServer(a.cfg, a.db, a.log, host, port)
	s.Audit = a.audit
	s.ImagesStore = a.images
	s.CategoriesStore = a.categories
	s.FeaturedStore = gormstore.NewFeaturedStore(a.db)
	s.BackgroundsStore = gormstore.NewBackgroundsStore(a.db)
	s.ContactsStore = contacts
	s.SettingsStore = gormstore.NewSettingsStore(a.db)
	s.HealthStore = health
	s.Storage = a.storage
	s.Ingest = a.ingest
	s.Tagger = a.tagger
	s.Backups = a.backups
	s.Contact = contact.NewRelay(contacts, mailer, a.cfg.SMTPFrom, a.cfg.ContactRecipient, a.log)
	s.Authenticators = authenticator.NewRegistry(authn.NewPasswordAuthenticator(admins, health))
	s.Sessions = sessions
	s.AuthMiddleware = middleware.NewSessionAuthenticator(sessions)

	endpoints.RegisterAll(s)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("running server", zap.String("host", host), zap.String("port", port))
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
