package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	CORSAllowedOrigins      []string
	SwaggerEnabled          bool
	StorageDriver           string
	DataDir                 string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBBreakerThreshold      int
	DBBreakerOpenTimeout    time.Duration
	RosterCacheTTL          time.Duration
	RebuildWorkers          int
	InternalJobToken        string
	UptraceEnabled          bool
	UptraceDSN              string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeUploadRate     time.Duration
	LogLevel                logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", StorageFile))
	if err != nil {
		return Config{}, err
	}
	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	if storageDriver == StorageFile && dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR is required when STORAGE_DRIVER=file")
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	dbBreakerThreshold, err := getEnvAsInt("DB_BREAKER_FAILURE_THRESHOLD", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BREAKER_FAILURE_THRESHOLD: %w", err)
	}
	if dbBreakerThreshold < 1 {
		return Config{}, fmt.Errorf("DB_BREAKER_FAILURE_THRESHOLD must be >= 1")
	}
	dbBreakerOpenTimeout, err := time.ParseDuration(getEnv("DB_BREAKER_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BREAKER_OPEN_TIMEOUT: %w", err)
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	rosterCacheTTL, err := time.ParseDuration(getEnv("ROSTER_CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_CACHE_TTL: %w", err)
	}
	if rosterCacheTTL < 0 {
		return Config{}, fmt.Errorf("ROSTER_CACHE_TTL must be >= 0")
	}

	rebuildWorkers, err := getEnvAsInt("REBUILD_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REBUILD_WORKERS: %w", err)
	}
	if rebuildWorkers < 1 {
		return Config{}, fmt.Errorf("REBUILD_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "footy-tracker"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:          swaggerEnabled,
		StorageDriver:           storageDriver,
		DataDir:                 dataDir,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		DBBreakerThreshold:      dbBreakerThreshold,
		DBBreakerOpenTimeout:    dbBreakerOpenTimeout,
		RosterCacheTTL:          rosterCacheTTL,
		RebuildWorkers:          rebuildWorkers,
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeUploadRate:     pyroscopeUploadRate,
		LogLevel:                logging.ParseLevel(strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_LEVEL", "info")))),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StorageFile, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s, %s", v, StorageMemory, StorageFile, StoragePostgres)
	}
}
