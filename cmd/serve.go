package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kozaktomas/photo-prefs/internal/config"
	"github.com/kozaktomas/photo-prefs/internal/constants"
	"github.com/kozaktomas/photo-prefs/internal/database"
	"github.com/kozaktomas/photo-prefs/internal/database/mock"
	"github.com/kozaktomas/photo-prefs/internal/database/postgres"
	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
	"github.com/kozaktomas/photo-prefs/internal/logging"
	"github.com/kozaktomas/photo-prefs/internal/metrics"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
	"github.com/kozaktomas/photo-prefs/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Photo Prefs web server.
The server exposes the user preferences API, the video face detection progress
API with its event stream, and Prometheus metrics on /metrics.

Preferences are stored in PostgreSQL (DATABASE_URL). Use --memory to keep them
in memory instead, for development.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (defaults to WEB_PORT or 8080)")
	serveCmd.Flags().String("host", "", "Host to bind to (defaults to WEB_HOST or 0.0.0.0)")
	serveCmd.Flags().Bool("memory", false, "Store preferences in memory instead of PostgreSQL")
}

// resolveServeHostPort applies --host and --port over the environment config.
func resolveServeHostPort(cmd *cobra.Command, cfg *config.WebConfig) {
	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Host = host
	}
}

// registerServeBackend registers the preferences repository for the serve
// command. It returns the PostgreSQL pool to close on exit, nil in memory mode.
func registerServeBackend(ctx context.Context, cfg *config.DatabaseConfig, memory bool, logger *zap.Logger) (*postgres.Pool, error) {
	if memory {
		repo := mock.NewMockPreferencesRepository()
		database.RegisterPreferencesBackend(func() database.PreferencesWriter { return repo })
		logger.Warn("storing preferences in memory, changes are lost on exit")
		return nil, nil
	}

	if cfg.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required (or use --memory)")
	}

	logger.Info("connecting to PostgreSQL")
	pool, err := postgres.Initialize(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	repo := postgres.NewPreferencesRepository(pool)
	database.RegisterPreferencesBackend(func() database.PreferencesWriter { return repo })
	return pool, nil
}

// serveDefaults returns the system defaults with config overrides applied.
func serveDefaults(cfg *config.PreferencesConfig) preferences.Preferences {
	defaults := preferences.Defaults()
	if cfg.DefaultArchiveSize > 0 {
		defaults.Download.ArchiveSize = cfg.DefaultArchiveSize
	}
	return defaults
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	resolveServeHostPort(cmd, &cfg.Web)

	logger, err := logging.New(cfg.Web.LogDevelopment)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := registerServeBackend(ctx, &cfg.Database, mustGetBool(cmd, "memory"), logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	store, err := database.GetPreferencesWriter(ctx)
	if err != nil {
		return fmt.Errorf("failed to get preferences store: %w", err)
	}
	if count, err := store.Count(ctx); err == nil {
		logger.Info("preferences store ready", zap.Int("users", count))
	}

	collectors, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	server := web.NewServer(&cfg.Web, web.Deps{
		Preferences:  preferences.NewService(store, serveDefaults(&cfg.Preferences)),
		FaceProgress: faceprogress.NewStore(),
		Metrics:      collectors,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       logger,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start returns as soon as shutdown begins. The pool must outlive the
	// requests still draining, so runServe waits for shutdownDone.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	}()

	fmt.Printf("Starting Photo Prefs on http://%s\n", cfg.Web.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	<-shutdownDone
	return nil
}
