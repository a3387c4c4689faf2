package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Password policy levels accepted by the registration validator
const (
	PasswordPolicyStrict = "strict"
	PasswordPolicyBasic  = "basic"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath  string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		// ShutdownTimeout bounds how long in-flight requests may finish on SIGTERM
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		URL             string `yaml:"url" env:"DATABASE_URL"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret              string `yaml:"secret" env:"JWT_SECRET"`
		ApplicantExpiration string `yaml:"applicant_expiration" env:"JWT_APPLICANT_EXPIRATION"`
		AdminExpiration     string `yaml:"admin_expiration" env:"JWT_ADMIN_EXPIRATION"`
		Issuer              string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
		AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
	} `yaml:"cors"`

	Uploads struct {
		MaxBytes         int64 `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES"`
		SyllabusMaxBytes int64 `yaml:"syllabus_max_bytes" env:"UPLOAD_SYLLABUS_MAX_BYTES"`
	} `yaml:"uploads"`

	Password struct {
		Policy string `yaml:"policy" env:"PASSWORD_POLICY"`
	} `yaml:"password"`

	Documents struct {
		LogoPath     string   `yaml:"logo_path" env:"DOCUMENTS_LOGO_PATH"`
		FontDir      string   `yaml:"font_dir" env:"DOCUMENTS_FONT_DIR"`
		SchoolName   string   `yaml:"school_name" env:"DOCUMENTS_SCHOOL_NAME"`
		Session      string   `yaml:"session" env:"DOCUMENTS_SESSION"`
		Issuer       string   `yaml:"issuer" env:"DOCUMENTS_ISSUER"`
		ContactEmail string   `yaml:"contact_email" env:"DOCUMENTS_CONTACT_EMAIL"`
		Phones       []string `yaml:"phones" env:"DOCUMENTS_PHONES"`
	} `yaml:"documents"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.ReadTimeout = "30s"
	config.Server.WriteTimeout = "60s"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "admissions"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.ApplicantExpiration = "168h"
	config.JWT.AdminExpiration = "24h"
	config.JWT.Issuer = "pioneer-admissions"

	config.Redis.Addr = "localhost:6379"

	config.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	config.CORS.AllowCredentials = true

	config.Uploads.MaxBytes = 5 << 20
	config.Uploads.SyllabusMaxBytes = 50 << 20

	config.Password.Policy = PasswordPolicyStrict

	config.Documents.LogoPath = "assets/logo.png"
	config.Documents.FontDir = "assets/fonts"
	config.Documents.SchoolName = "PIONEER INSTITUTE OF LEARNING"
	config.Documents.Session = "2025"
	config.Documents.Issuer = "Pioneer Institute of Learning"
	config.Documents.ContactEmail = "pioneerinstitute2008@gmail.com"

	config.SMTP.Port = 587

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database host or url is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, value := range map[string]string{
		"JWT applicant expiration": config.JWT.ApplicantExpiration,
		"JWT admin expiration":     config.JWT.AdminExpiration,
		"server read timeout":      config.Server.ReadTimeout,
		"server write timeout":     config.Server.WriteTimeout,
		"server shutdown timeout":  config.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch strings.ToLower(config.Password.Policy) {
	case PasswordPolicyStrict, PasswordPolicyBasic:
	default:
		return fmt.Errorf("unknown password policy %q", config.Password.Policy)
	}

	if config.Uploads.MaxBytes <= 0 || config.Uploads.SyllabusMaxBytes <= 0 {
		return fmt.Errorf("upload size limits must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether gin should run in release mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
