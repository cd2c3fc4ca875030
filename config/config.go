package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	ServerPort       string
	GinMode          string
	CORSAllowOrigins []string

	StorageDriver string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	SQLitePath    string

	RedisAddr     string
	RedisPort     string
	RedisPassword string

	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	OpenAITimeoutSeconds int

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

// RedisEnabled reports whether a redis host was configured for the read cache.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// OpenAITimeout is zero when the upstream call should never time out.
func (c *Config) OpenAITimeout() time.Duration {
	if c.OpenAITimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.OpenAITimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),
		SQLitePath:    getEnv("SQLITE_PATH", "promptpilot.db"),

		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAITimeoutSeconds: getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
