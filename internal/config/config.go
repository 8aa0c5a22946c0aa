package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrConfiguration is returned when required settings are missing or invalid.
// It is fatal at startup and never retried.
var ErrConfiguration = errors.New("configuration error")

// Supported store drivers.
const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StoreConfig is the immutable contract consumed by store connectors.
// ConnectionString, DatabaseName and CollectionName are all required.
type StoreConfig struct {
	Driver           string
	ConnectionString string
	DatabaseName     string
	CollectionName   string

	// Pool and timeout tuning. Zero values keep the driver defaults.
	MaxPoolSize        int
	MinPoolSize        int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	TimeoutSec         int
}

// Validate checks that every required field is present.
func (c StoreConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ConnectionString) == "" {
		missing = append(missing, "connection string")
	}
	if strings.TrimSpace(c.DatabaseName) == "" {
		missing = append(missing, "database name")
	}
	if strings.TrimSpace(c.CollectionName) == "" {
		missing = append(missing, "collection name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrConfiguration, strings.Join(missing, ", "))
	}
	switch c.Driver {
	case "", DriverMongoDB, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: unsupported store driver %q", ErrConfiguration, c.Driver)
	}
	return nil
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether object storage was configured at all.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	Store    StoreConfig
	MinIO    MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Load does not validate; connectors validate the store section when they are built.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("TZ_LOCATION", "UTC"),
		Store: StoreConfig{
			Driver:             getEnv("STORE_DRIVER", DriverMongoDB),
			ConnectionString:   getEnv("STORE_CONNECTION_STRING", ""),
			DatabaseName:       getEnv("STORE_DATABASE_NAME", ""),
			CollectionName:     getEnv("STORE_COLLECTION_NAME", ""),
			MaxPoolSize:        getEnvInt("STORE_MAX_POOL_SIZE", 100),
			MinPoolSize:        getEnvInt("STORE_MIN_POOL_SIZE", 0),
			MaxIdleConns:       getEnvInt("STORE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("STORE_CONN_MAX_LIFETIME_SEC", 300),
			TimeoutSec:         getEnvInt("STORE_TIMEOUT_SEC", 10),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
