package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pvarga-dev/portfolio_backend/internal/adapters/database/pgsql"
	"github.com/pvarga-dev/portfolio_backend/internal/adapters/storage/supabase"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	"github.com/pvarga-dev/portfolio_backend/internal/core/services"
	"github.com/pvarga-dev/portfolio_backend/internal/handlers"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
	"github.com/pvarga-dev/portfolio_backend/pkg/database"
)

// @title Portfolio Backend API
// @version 1.0
// @description Read API and admin API for the portfolio and journal site.

// @host localhost:8080
// @BasePath /

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

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-None-Match", "If-Modified-Since"},
		ExposeHeaders:    []string{"ETag", "Cache-Control", "Last-Modified"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := &portsrepo.RepositoryProvider{
		JournalRepo:  pgsql.NewPgxJournalRepository(dbPool),
		TagRepo:      pgsql.NewPgxTagRepository(dbPool),
		CategoryRepo: pgsql.NewPgxCategoryRepository(dbPool),
		ProjectRepo:  pgsql.NewPgxProjectRepository(dbPool),
		UserRepo:     pgsql.NewPgxUserRepository(dbPool),
		Media:        supabase.NewMediaStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket),
	}
	serviceContainer := services.NewServiceContainer(cfg, repos)

	metrics := httpcache.NewMetrics()
	popular := make([]string, 0, len(cfg.WarmPopularPaths))
	for _, path := range cfg.WarmPopularPaths {
		popular = append(popular, cfg.SelfBaseURL+path)
	}
	warmer := httpcache.NewWarmer(nil, logger, popular)

	handlers.RegisterRoutes(r, cfg, serviceContainer, metrics, warmer)

	// Prime the popular read endpoints once the server is accepting traffic.
	go func() {
		time.Sleep(2 * time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		warmed := warmer.WarmPopular(ctx)
		logger.Info("Cache warmup completed", slog.Int("warmed", warmed))
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies the SQL migrations with a temporary database/sql
// connection compatible with the pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
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
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
