package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/services"
	"github.com/SscSPs/cashbook_backend/internal/handlers"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/SscSPs/cashbook_backend/internal/platform/config"
	"github.com/SscSPs/cashbook_backend/internal/repositories/cache"
	"github.com/SscSPs/cashbook_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/SscSPs/cashbook_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Cashbook Backend API
// @version 1.0
// @description Multi-tenant cashbook, bank and party ledger with owner approval of staff edits.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(logger, cfg); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseRedis(rdb)

	repos := pgsql.NewRepositoryProvider(dbPool)
	if rdb != nil {
		repos.NotificationCache = cache.NewRedisNotificationSummaryCache(rdb, cfg.UnreadCountCacheTTL)
		repos.ReviewLocker = cache.NewRedisLocker(rdb, cfg.ReviewLockTTL)
	}
	serviceContainer := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.CORSAllowedOrigins
	c.AddAllowMethods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions)
	c.AddAllowHeaders("Authorization", "Content-Type", "X-Request-ID")
	c.AddExposeHeaders("Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining")
	c.AllowCredentials = true
	return c
}

// runMigrations applies every pending "up" migration over a short-lived database/sql
// connection opened with the pgx stdlib driver.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	// Closing m also closes migrationDB.
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
