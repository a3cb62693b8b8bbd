// @title           FlyerHub API
// @version         1.0.0
// @description     Backend API for a flyer design shop: catalog templates, customer carts and orders with per-order artwork, banners, media libraries and admin notifications.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/docs"
	"flyerhub-backend/internal/config"
	"flyerhub-backend/internal/database"
	"flyerhub-backend/internal/handlers"
	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/notify"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/storage"
	"flyerhub-backend/internal/supabase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.ConfigureErrors(cfg.IsProduction())

	// Point the Swagger UI at the deployed host.
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	ctx := context.Background()

	db, err := supabase.NewDatabaseClient(ctx, cfg.DatabaseURL, supabase.DefaultPoolConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.NewMigrator(db.DB()).Run(ctx); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	logging.Info().Msg("migrations completed")

	created, err := handlers.EnsureBootstrapAdmin(ctx, db, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to bootstrap admin")
	}
	if created {
		logging.Info().Str("email", cfg.BootstrapAdminEmail).Msg("bootstrap admin created")
	}

	backend, err := newStorageBackend(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize storage")
	}
	logging.Info().Str("backend", backend.Name()).Msg("storage ready")

	notifier, err := notify.NewDispatcher(db, cfg.NotifyBuffer)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to start notification dispatcher")
	}

	app := &app{
		cfg:      cfg,
		db:       db,
		backend:  backend,
		notifier: notifier,
		composer: services.NewComposer(db, db, services.NewReconciler(backend, cfg.MaxUploadBytes()), notifier),
		uploader: services.NewUploader(backend),
	}
	router, limiter := app.router()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown failed")
	}
	limiter.Stop()
	if err := notifier.Close(); err != nil {
		logging.Error().Err(err).Msg("notification dispatcher close failed")
	}
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("database close failed")
	}
}

func newStorageBackend(cfg *config.Config) (storage.Backend, error) {
	if cfg.StorageBackend == config.StorageBackendSupabase {
		client, err := supabase.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client.Storage(), nil
	}
	return storage.NewLocalStorage(cfg.UploadDir, cfg.UploadsURLPrefix)
}
