package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/repo-insights/internal/api"
	"github.com/Kamar-Folarin/repo-insights/internal/batch"
	"github.com/Kamar-Folarin/repo-insights/internal/config"
	"github.com/Kamar-Folarin/repo-insights/internal/db"
	"github.com/Kamar-Folarin/repo-insights/internal/github"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/projects"
	"github.com/Kamar-Folarin/repo-insights/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	store, cleanup := openLinkStore(cfg, logger)
	defer cleanup()

	client := github.NewClient(logger,
		github.WithBaseURL(cfg.GitHub.APIBaseURL),
		github.WithTimeout(cfg.GitHub.Timeout),
		github.WithRateLimit(cfg.GitHub.RequestsPerSecond, cfg.Batch.Workers),
	)

	var provider projects.Provider = projects.NewStoreProvider(store)
	if cfg.LegacyOwner != "" && cfg.LegacyRepo != "" {
		legacy := projects.NewStaticProvider(models.GitHubLink{
			Owner: cfg.LegacyOwner,
			Repo:  cfg.LegacyRepo,
			Token: cfg.GitHub.Token,
		})
		provider = projects.Fallback(provider, legacy)
		logger.WithField("repo", cfg.LegacyOwner+"/"+cfg.LegacyRepo).Info("Legacy repository fallback enabled")
	}

	insights := service.NewInsightsService(
		provider,
		client,
		batch.NewProcessor(cfg.Batch),
		logger,
		service.WithLocation(cfg.Timezone),
		service.WithLinker(projects.NewLinker(store, client, logger)),
	)

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(api.NewHandler(insights, logger), cfg.CacheTTL)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited properly")
}

// openLinkStore connects to Postgres when a connection string is set and
// falls back to an in-memory store otherwise.
func openLinkStore(cfg *config.Config, logger *logrus.Logger) (db.LinkStore, func()) {
	if cfg.DBConnectionString == "" {
		logger.Warn("DB_CONNECTION_STRING not set, project links are kept in memory")
		return db.NewMemoryStore(), func() {}
	}

	pg, err := db.NewPostgresStore(cfg.DBConnectionString)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations with retry logic
	if err := retry(3, 5*time.Second, pg.Migrate); err != nil {
		logger.Fatalf("Failed to run migrations after retries: %v", err)
	}

	return pg, func() {
		if err := pg.Close(); err != nil {
			logger.Errorf("Failed to close database: %v", err)
		}
	}
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
