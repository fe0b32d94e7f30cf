// Package bootstrap assembles configuration, database, dependencies and the
// HTTP router.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/acitm/admissions/internal/app/controllers"
	appMigrations "github.com/acitm/admissions/internal/app/migrations"
	appRepos "github.com/acitm/admissions/internal/app/repositories"
	appRoutes "github.com/acitm/admissions/internal/app/routes"
	appServices "github.com/acitm/admissions/internal/app/services"
	"github.com/acitm/admissions/internal/config"
	"github.com/acitm/admissions/internal/db"
	appMiddleware "github.com/acitm/admissions/internal/middleware"
	pkgAuth "github.com/acitm/admissions/internal/pkg/auth"
	"github.com/acitm/admissions/internal/pkg/filestorage"
	"github.com/acitm/admissions/internal/pkg/logger"
	"github.com/acitm/admissions/internal/pkg/session"
	"github.com/acitm/admissions/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	FileStorage         *filestorage.LocalStorage
	SessionStore        *session.Store
	AuthService         *appServices.AuthService
	ProvisioningService *appServices.ProvisioningService
	CenterService       *appServices.CenterService
	StudentService      *appServices.StudentService
	ExportService       *appServices.ExportService
	StatsService        *appServices.StatsService
	AuthController      *appControllers.AuthController
	CenterController    *appControllers.CenterController
	StudentController   *appControllers.StudentController
	StatsController     *appControllers.StatsController
	ExportController    *appControllers.ExportController
	FileController      *appControllers.FileController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection established")

	migrator := appMigrations.NewMigrator(dbPool)
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	publicURL := cfg.Server.PublicURL
	if publicURL == "" {
		publicURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, publicURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	accessExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	refreshExp, err := time.ParseDuration(cfg.JWT.RefreshTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.SessionStore = session.NewStore()
	deps.SessionStore.Init()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AccountRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.SessionStore,
	)
	deps.ProvisioningService = appServices.NewProvisioningService(
		deps.Repos.CenterRepository,
		deps.Repos.AccountRepository,
		deps.Repos.ProfileRepository,
	)
	deps.CenterService = appServices.NewCenterService(deps.Repos.CenterRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.ExportService = appServices.NewExportService(deps.Repos.StudentRepository, deps.Repos.CenterRepository)
	deps.StatsService = appServices.NewStatsService(deps.Repos.StatsRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CenterController = appControllers.NewCenterController(deps.CenterService, deps.ProvisioningService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.AuthService, lgr)
	deps.StatsController = appControllers.NewStatsController(deps.StatsService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService, deps.AuthService, lgr)
	deps.FileController = appControllers.NewFileController(deps.FileStorage, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CenterController,
		deps.StudentController,
		deps.StatsController,
		deps.ExportController,
		deps.FileController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
