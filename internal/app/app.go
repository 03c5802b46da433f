// Package app provides the application initialization and lifecycle management
package app

import (
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/redline/internal/config"
	"github.com/tildaslashalef/redline/internal/database"
	"github.com/tildaslashalef/redline/internal/export"
	"github.com/tildaslashalef/redline/internal/gitutil"
	"github.com/tildaslashalef/redline/internal/loggy"
)

// App represents the application instance with its dependencies
type App struct {
	Config *config.Config
	Export *export.Service
	Runs   export.Repository
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing", "log_level", cfg.Logging.Level)

	db, err := initDatabase(cfg)
	if err != nil {
		return nil, err
	}

	return initServices(cfg, db), nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	logCfg := loggy.DefaultConfig()
	logCfg.Level = config.ParseLogLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logCfg.Output = cfg.Logging.Output
	logCfg.AddSource = cfg.Logging.AddSource
	if cfg.Logging.TimeFormat != "" {
		logCfg.TimeFormat = cfg.Logging.TimeFormat
	}

	if err := loggy.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initDatabase opens the history database and brings its schema up to
// date. History is optional: a failure here degrades to exporting
// without run recording instead of blocking the export itself.
func initDatabase(cfg *config.Config) (*sql.DB, error) {
	if err := database.InitDB(cfg); err != nil {
		loggy.Warn("Failed to initialize history database, runs will not be recorded", "error", err)
		return nil, nil
	}

	if applied, err := database.RunMigrations(); err != nil {
		loggy.Warn("Failed to migrate history database, runs will not be recorded", "error", err)
		return nil, nil
	} else if applied > 0 {
		loggy.Info("Applied history database migrations", "count", applied)
	}

	db, err := database.DB()
	if err != nil {
		return nil, err
	}
	return db, nil
}

// initServices initializes all application services
func initServices(cfg *config.Config, db *sql.DB) *App {
	gitService := gitutil.NewService(loggy.With("component", "git"))

	var repo export.Repository
	if db != nil {
		repo = export.NewSQLRepository(db, loggy.With("component", "history"))
	}

	exportService := export.NewService(repo, gitService, loggy.With("component", "export"))

	return &App{
		Config: cfg,
		Export: exportService,
		Runs:   repo,
	}
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := database.CloseDB(); err != nil {
		loggy.Error("Error closing database connection", "error", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
