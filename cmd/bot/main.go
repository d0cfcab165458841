package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"letterlinks/internal/config"
	"letterlinks/internal/dictionary"
	"letterlinks/internal/handler"
	"letterlinks/internal/middleware"
	"letterlinks/internal/repository"
	"letterlinks/internal/repository/postgres"
	"letterlinks/internal/repository/sqlite"
	"letterlinks/internal/scoring"
	"letterlinks/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Letter Links Bot", zap.String("db_driver", cfg.Database.Driver))

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Failed to load puzzle timezone", zap.Error(err))
	}

	// Load dictionary
	dict := loadDictionary(cfg.Game, logger)

	// Open storage
	db, playerRepo, completionRepo, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Storage ready")

	// Initialize services
	playerService := service.NewPlayerService(playerRepo)
	statsService := service.NewStatsService(completionRepo, cfg.Game.RetentionDays, logger)
	gameService := service.NewGameService(playerRepo, completionRepo, dict, service.GameOptions{
		Policy:   scoring.Policy{Tolerance: cfg.Game.ScoreTolerance},
		Location: loc,
	}, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}
	bot.Use(middleware.PlayerMiddleware(playerService, logger))

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, gameService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, statsService, gameService, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadDictionary loads the word list, falling back to the configured policy when it is missing
func loadDictionary(cfg config.GameConfig, logger *zap.Logger) *dictionary.Index {
	dict := dictionary.New(cfg.DictionaryFailOpen)
	if err := dict.LoadFile(cfg.DictionaryPath); err != nil {
		if !cfg.DictionaryFailOpen {
			logger.Fatal("Failed to load dictionary", zap.String("path", cfg.DictionaryPath), zap.Error(err))
		}
		logger.Warn("Dictionary not loaded, every word will be accepted",
			zap.String("path", cfg.DictionaryPath),
			zap.Error(err),
		)
		return dict
	}
	logger.Info("Dictionary loaded", zap.Int("words", dict.Len()))
	return dict
}

// openStorage opens the configured database and returns its repositories
func openStorage(cfg *config.Config, logger *zap.Logger) (*sql.DB, repository.PlayerRepository, repository.CompletionRepository, error) {
	if cfg.Database.Driver == config.DriverSQLite {
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("Using SQLite storage", zap.String("path", cfg.Database.SQLitePath))
		return db, sqlite.NewPlayerRepo(db), sqlite.NewCompletionRepo(db), nil
	}

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	logger.Info("Database migrations completed")
	return db, postgres.NewPlayerRepo(db), postgres.NewCompletionRepo(db), nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob removes old completions and finished sessions once a day
func runCleanupJob(ctx context.Context, statsService *service.StatsService, gameService *service.GameService, logger *zap.Logger) {
	cleanup := func() {
		if err := statsService.CleanupOldData(); err != nil {
			logger.Error("Failed to run cleanup", zap.Error(err))
		}
		if n := gameService.EvictStale(); n > 0 {
			logger.Info("Dropped sessions of earlier days", zap.Int("sessions", n))
		}
	}

	// Run cleanup once at startup
	cleanup()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Debug("Running scheduled cleanup")
			cleanup()
		}
	}
}
