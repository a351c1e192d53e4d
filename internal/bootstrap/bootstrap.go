package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/peiyu/classmeet/internal/app/controllers"
	appMigrations "github.com/peiyu/classmeet/internal/app/migrations"
	appRepos "github.com/peiyu/classmeet/internal/app/repositories"
	appRoutes "github.com/peiyu/classmeet/internal/app/routes"
	appServices "github.com/peiyu/classmeet/internal/app/services"
	"github.com/peiyu/classmeet/internal/config"
	"github.com/peiyu/classmeet/internal/db"
	appMiddleware "github.com/peiyu/classmeet/internal/middleware"
	pkgAuth "github.com/peiyu/classmeet/internal/pkg/auth"
	"github.com/peiyu/classmeet/internal/pkg/filestorage"
	"github.com/peiyu/classmeet/internal/pkg/helpers"
	"github.com/peiyu/classmeet/internal/pkg/logger"
	"github.com/peiyu/classmeet/internal/pkg/notify"
	"github.com/peiyu/classmeet/internal/pkg/ocr"
	"github.com/peiyu/classmeet/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	SchoolService      *appServices.SchoolService
	ScheduleService    *appServices.ScheduleService
	FriendshipService  *appServices.FriendshipService
	OCRService         *appServices.OCRService
	AuthController     *appControllers.AuthController
	SchoolController   *appControllers.SchoolController
	ScheduleController *appControllers.ScheduleController
	FriendController   *appControllers.FriendController
	OCRController      *appControllers.OCRController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Hub                *notify.Hub
	Logger             zerolog.Logger
	FileStorage        *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding failures are logged but do not block startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = notify.NewHub(lgr)
	go deps.Hub.Run()

	recognizer := ocr.NewHTTPRecognizer(ocr.Config{
		Endpoint:  cfg.OCR.Endpoint,
		Languages: cfg.OCR.Languages,
		Timeout:   helpers.ParseDuration(cfg.OCR.Timeout, 60*time.Second),
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.SchoolRepository,
		deps.JWTService,
		lgr,
	)
	deps.SchoolService = appServices.NewSchoolService(deps.Repos.SchoolRepository, lgr)
	deps.ScheduleService = appServices.NewScheduleService(
		deps.Repos.ScheduleRepository,
		deps.Repos.SchoolRepository,
		deps.Repos.UserRepository,
		deps.Repos.FriendshipRepository,
		lgr,
	)
	deps.FriendshipService = appServices.NewFriendshipService(
		deps.Repos.FriendshipRepository,
		deps.Repos.UserRepository,
		deps.Hub,
		lgr,
	)
	deps.OCRService = appServices.NewOCRService(deps.FileStorage, recognizer, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.SchoolController = appControllers.NewSchoolController(deps.SchoolService, lgr)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService, lgr)
	deps.FriendController = appControllers.NewFriendController(deps.FriendshipService, deps.Hub, lgr)
	deps.OCRController = appControllers.NewOCRController(deps.OCRService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SchoolController,
		deps.ScheduleController,
		deps.FriendController,
		deps.OCRController,
		deps.AuthMiddleware,
	)

	return router
}
