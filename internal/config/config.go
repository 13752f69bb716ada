package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// StorageProviderS3 selects the AWS S3 backend.
	StorageProviderS3 = "s3"
	// StorageProviderMinIO selects an S3-compatible MinIO backend.
	StorageProviderMinIO = "minio"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	Log     LogConfig
	CORS    CORSConfig
	Listing ListingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                 string        `mapstructure:"port"`
	ReadTimeout          time.Duration `mapstructure:"read_timeout"`
	WriteTimeout         time.Duration `mapstructure:"write_timeout"`
	Environment          string        `mapstructure:"environment"`
	MaxMultipartMemoryMB int64         `mapstructure:"max_multipart_memory_mb"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig holds object storage settings shared by the S3 and MinIO backends.
type StorageConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// PublicBaseURL overrides the host part of public object URLs, e.g. a CDN.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ListingConfig holds record listing settings.
type ListingConfig struct {
	Limit int `mapstructure:"limit"`
}

// Load reads configuration from an optional .env file and environment variables
// with the APKDL_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config.Load: ignoring .env: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix("APKDL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_multipart_memory_mb", 32)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "apkdl")
	v.SetDefault("db.password", "apkdl_secret")
	v.SetDefault("db.name", "apkdl_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.auto_migrate", true)

	// Storage defaults
	v.SetDefault("storage.provider", StorageProviderS3)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "apk-downloader")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.public_base_url", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("listing.limit", 100)

	envBindings := map[string]string{
		"server.port":                    "APKDL_SERVER_PORT",
		"server.read_timeout":            "APKDL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "APKDL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "APKDL_SERVER_ENVIRONMENT",
		"server.max_multipart_memory_mb": "APKDL_SERVER_MAX_MULTIPART_MEMORY_MB",
		"db.host":                        "APKDL_DB_HOST",
		"db.port":                        "APKDL_DB_PORT",
		"db.user":                        "APKDL_DB_USER",
		"db.password":                    "APKDL_DB_PASSWORD",
		"db.name":                        "APKDL_DB_NAME",
		"db.sslmode":                     "APKDL_DB_SSLMODE",
		"db.max_open":                    "APKDL_DB_MAX_OPEN",
		"db.max_idle":                    "APKDL_DB_MAX_IDLE",
		"db.auto_migrate":                "APKDL_DB_AUTO_MIGRATE",
		"storage.provider":               "APKDL_STORAGE_PROVIDER",
		"storage.region":                 "APKDL_STORAGE_REGION",
		"storage.bucket":                 "APKDL_STORAGE_BUCKET",
		"storage.endpoint":               "APKDL_STORAGE_ENDPOINT",
		"storage.access_key":             "APKDL_STORAGE_ACCESS_KEY",
		"storage.secret_key":             "APKDL_STORAGE_SECRET_KEY",
		"storage.use_ssl":                "APKDL_STORAGE_USE_SSL",
		"storage.public_base_url":        "APKDL_STORAGE_PUBLIC_BASE_URL",
		"log.level":                      "APKDL_LOG_LEVEL",
		"log.format":                     "APKDL_LOG_FORMAT",
		"cors.allowed_origins":           "APKDL_CORS_ALLOWED_ORIGINS",
		"listing.limit":                  "APKDL_LISTING_LIMIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if APKDL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("APKDL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:                 serverPort,
		ReadTimeout:          v.GetDuration("server.read_timeout"),
		WriteTimeout:         v.GetDuration("server.write_timeout"),
		Environment:          v.GetString("server.environment"),
		MaxMultipartMemoryMB: v.GetInt64("server.max_multipart_memory_mb"),
	}
	cfg.DB = DBConfig{
		Host:        v.GetString("db.host"),
		Port:        v.GetInt("db.port"),
		User:        v.GetString("db.user"),
		Password:    v.GetString("db.password"),
		Name:        v.GetString("db.name"),
		SSLMode:     v.GetString("db.sslmode"),
		MaxOpen:     v.GetInt("db.max_open"),
		MaxIdle:     v.GetInt("db.max_idle"),
		AutoMigrate: v.GetBool("db.auto_migrate"),
	}
	cfg.Storage = StorageConfig{
		Provider:      strings.ToLower(v.GetString("storage.provider")),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		UseSSL:        v.GetBool("storage.use_ssl"),
		PublicBaseURL: strings.TrimRight(v.GetString("storage.public_base_url"), "/"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	limit := v.GetInt("listing.limit")
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	cfg.Listing = ListingConfig{Limit: limit}

	switch cfg.Storage.Provider {
	case StorageProviderS3, StorageProviderMinIO:
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Storage.Provider)
	}
	if cfg.Storage.Provider == StorageProviderMinIO && cfg.Storage.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required for provider %q", StorageProviderMinIO)
	}

	return cfg, nil
}
