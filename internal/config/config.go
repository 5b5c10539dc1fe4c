package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"task_tracker/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	AppPort       string
	StorageDriver string
	DatabaseURL   string
	AutoMigrate   bool

	LogLevel string
	LogJSON  bool

	// Redis is optional, the rate limiter falls back to process memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// 0 disables rate limiting on the task routes
	APIRateLimit  int
	APIRateWindow time.Duration

	CORSAllowedOrigins []string
	WSAllowedOrigin    string

	ShutdownTimeout time.Duration
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	driver := strings.ToLower(strings.TrimSpace(getenv("STORAGE_DRIVER")))
	if driver == "" {
		driver = StorageDriverPostgres
	}
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}

	dbURL := getenv("DATABASE_URL")
	if driver == StorageDriverPostgres && dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	port := getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		redisDB = n
	}

	apiRateLimit := 0 // запросов за окно, 0 = без лимита
	if v := getenv("API_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid API_RATE_LIMIT %q", v)
		}
		apiRateLimit = n
	}

	apiRateWindow := time.Minute
	if v := getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	// через запятую
	origins := []string{"*"}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	shutdownTimeout := 10 * time.Second
	if v := getenv("SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			shutdownTimeout = time.Duration(n) * time.Second
		}
	}

	logLevel := getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:            port,
		StorageDriver:      driver,
		DatabaseURL:        dbURL,
		AutoMigrate:        getenv("AUTO_MIGRATE") != "false",
		LogLevel:           logLevel,
		LogJSON:            getenv("LOG_JSON") == "true",
		RedisAddr:          getenv("REDIS_ADDR"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		APIRateLimit:       apiRateLimit,
		APIRateWindow:      apiRateWindow,
		CORSAllowedOrigins: origins,
		WSAllowedOrigin:    getenv("WS_ALLOWED_ORIGIN"),
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}
