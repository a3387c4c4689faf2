package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/pioneer/admissions/internal/app/controllers"
	appMigrations "github.com/pioneer/admissions/internal/app/migrations"
	appRepos "github.com/pioneer/admissions/internal/app/repositories"
	appRoutes "github.com/pioneer/admissions/internal/app/routes"
	appServices "github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/config"
	"github.com/pioneer/admissions/internal/db"
	appMiddleware "github.com/pioneer/admissions/internal/middleware"
	pkgAuth "github.com/pioneer/admissions/internal/pkg/auth"
	"github.com/pioneer/admissions/internal/pkg/email"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/helpers"
	"github.com/pioneer/admissions/internal/pkg/logger"
	"github.com/pioneer/admissions/internal/pkg/pdf"
	"github.com/pioneer/admissions/internal/pkg/validation"
	"github.com/pioneer/admissions/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB             *pgxpool.Pool
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Revocations    pkgAuth.RevocationStore
	Redis          *redis.Client
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// Close releases the connections owned by the dependencies
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "admissions",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SetupRevocations connects to Redis when enabled. When Redis is disabled or
// unreachable, revoked tokens are tracked in process memory.
func SetupRevocations(cfg *config.Config, lgr zerolog.Logger) (pkgAuth.RevocationStore, *redis.Client) {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, using in-memory token revocation")
		return pkgAuth.NewMemoryRevocationStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, using in-memory token revocation")
		_ = client.Close()
		return pkgAuth.NewMemoryRevocationStore(), nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	return pkgAuth.NewRedisRevocationStore(client), client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: dbPool, Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	resolver := filestorage.NewResolver(deps.FileStorage, filestorage.UploadPolicy{
		MaxBytes:  cfg.Uploads.MaxBytes,
		Overrides: map[filestorage.UploadKind]int64{filestorage.KindSyllabusPDF: cfg.Uploads.SyllabusMaxBytes},
	})

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:           cfg.JWT.Secret,
		ApplicantExpiration: helpers.ParseDuration(cfg.JWT.ApplicantExpiration, 168*time.Hour),
		AdminExpiration:     helpers.ParseDuration(cfg.JWT.AdminExpiration, 24*time.Hour),
		TokenIssuer:         cfg.JWT.Issuer,
	})
	deps.Revocations, deps.Redis = SetupRevocations(cfg, lgr)

	fonts, err := pdf.LoadFontSet(cfg.Documents.FontDir)
	if err != nil {
		lgr.Warn().Err(err).Str("dir", cfg.Documents.FontDir).Msg("Custom fonts unavailable, using Helvetica")
		fonts = nil
	}

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		FromName:   cfg.SMTP.FromName,
		FromEmail:  cfg.SMTP.FromEmail,
		UseTLS:     cfg.SMTP.UseTLS,
		SchoolName: cfg.Documents.SchoolName,
	}, lgr)

	policy := validation.ParsePasswordPolicy(cfg.Password.Policy)
	validator := validation.New(policy)
	repos := deps.Repos

	deps.Services = &appServices.Services{
		Applicant: appServices.NewApplicantService(repos.ApplicantRepository, validation.NewRegistrationValidator(policy),
			resolver, deps.JWTService, deps.Revocations, lgr),
		Admin:       appServices.NewAdminService(repos.AdminRepository, deps.JWTService, deps.Revocations, lgr),
		Application: appServices.NewApplicationService(repos.ApplicantRepository, deps.FileStorage, notifier, lgr),
		Document: appServices.NewDocumentService(repos.ApplicantRepository, deps.FileStorage, pdf.NewRenderer(fonts),
			appServices.DocumentConfig{
				LogoPath:     cfg.Documents.LogoPath,
				SchoolName:   cfg.Documents.SchoolName,
				Session:      cfg.Documents.Session,
				Issuer:       cfg.Documents.Issuer,
				ContactEmail: cfg.Documents.ContactEmail,
				Phones:       cfg.Documents.Phones,
			}, lgr),
		Syllabus:   appServices.NewSyllabusService(repos.SyllabusRepository, resolver, lgr),
		Datesheet:  appServices.NewDatesheetService(repos.DatesheetRepository, resolver, validator, lgr),
		Message:    appServices.NewMessageService(repos.MessageRepository, resolver, validator, lgr),
		Contact:    appServices.NewContactService(repos.ContactRepository, validator, lgr),
		Assignment: appServices.NewAssignmentService(repos.AssignmentRepository, resolver, validator, lgr),
		Dashboard: appServices.NewDashboardService(appServices.DashboardCounters{
			Applications: repos.ApplicantRepository,
			Admins:       repos.AdminRepository,
			Contacts:     repos.ContactRepository,
			Datesheets:   repos.DatesheetRepository,
			Messages:     repos.MessageRepository,
			Syllabus:     repos.SyllabusRepository,
			Assignments:  repos.AssignmentRepository,
		}),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		deps.Revocations,
		func(ctx context.Context, id string) error {
			_, err := repos.ApplicantRepository.GetByID(ctx, id)
			return err
		},
		func(ctx context.Context, id string) error {
			_, err := repos.AdminRepository.GetByID(ctx, id)
			return err
		},
		lgr,
	)
	deps.Controllers = appControllers.NewControllers(deps.Services, lgr)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultAdmin(seedCtx, repos.AdminRepository, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default administrator, proceeding anyway...")
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.FileStorage.BasePath(), deps.DB)

	return router
}
