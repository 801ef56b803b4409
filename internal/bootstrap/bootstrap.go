package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/unipem/lms/internal/app/controllers"
	appMigrations "github.com/unipem/lms/internal/app/migrations"
	appRepos "github.com/unipem/lms/internal/app/repositories"
	appRoutes "github.com/unipem/lms/internal/app/routes"
	appServices "github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/config"
	"github.com/unipem/lms/internal/db"
	appMiddleware "github.com/unipem/lms/internal/middleware"
	pkgAuth "github.com/unipem/lms/internal/pkg/auth"
	"github.com/unipem/lms/internal/pkg/filestorage"
	"github.com/unipem/lms/internal/pkg/helpers"
	"github.com/unipem/lms/internal/pkg/logger"
	"github.com/unipem/lms/internal/pkg/validation"
	"github.com/unipem/lms/internal/pkg/websocket"
	"github.com/unipem/lms/internal/seed"
)

// DefaultConfigPath is used when no config file is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Sessions    *appMiddleware.SessionMiddleware
	FileStorage *filestorage.LocalStorage
	Hub         *websocket.Hub
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// Migrate applies the pending SQL migrations
func Migrate(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// Seed inserts the demo accounts and courses
func Seed(ctx context.Context, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	return seed.NewSeeder(appRepos.NewRepositories(pool), lgr).Run(ctx)
}

// SetupDatabase connects, migrates and optionally seeds the database.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := Migrate(ctx, cfg, pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		pool.Close()
		return nil, err
	}

	if cfg.Database.SeedOnStart {
		if err := Seed(ctx, pool, lgr); err != nil {
			// Missing demo data should not keep the server down
			lgr.Error().Err(err).Msg("Failed to create seed data, proceeding anyway...")
		}
	}

	return pool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	maxAge := helpers.ParseDuration(cfg.Session.MaxAge, 7*24*time.Hour)
	codec, err := pkgAuth.NewSessionCodec(pkgAuth.SessionConfig{
		Mode:   cfg.Session.Mode,
		Secret: cfg.Session.Secret,
		Issuer: cfg.Session.Issuer,
		MaxAge: maxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session codec: %w", err)
	}
	deps.Sessions = appMiddleware.NewSessionMiddleware(codec, cfg.Session.CookieName, maxAge, cfg.IsProduction(), lgr)

	deps.Hub = websocket.NewHub(logger.Component("hub"))
	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.Hub, cfg, lgr)

	s := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(s.AuthService, deps.Sessions, cfg.Site.Name),
		Dashboard:  appControllers.NewDashboardController(s.DashboardService, s.CourseService, s.SubmissionService),
		User:       appControllers.NewUserController(s.UserService),
		Course:     appControllers.NewCourseController(s.CourseService),
		Section:    appControllers.NewSectionController(s.SectionService),
		Activity:   appControllers.NewActivityController(s.ActivityService),
		Submission: appControllers.NewSubmissionController(s.SubmissionService),
		Live:       websocket.NewHandler(deps.Hub, s.ActivityService, cfg.Server.CORSOrigins, logger.Component("live")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
		deps.Sessions.Gate(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.Sessions, deps.FileStorage.Root())

	return router
}
