package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	SuggestHeuristic = "heuristic"
	SuggestAnthropic = "anthropic"
	SuggestFallback  = "fallback"
)

type Config struct {
	AppPort            string
	DbDriver           string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	DbParams           string
	SQLitePath         string
	TrustedProxies     []string
	CORSAllowedOrigins []string
	TranslationFolder  string
	SuggestBackend     string
	AnthropicAPIKey    string
	AnthropicModel     string
	ShutdownTimeout    time.Duration
	APIURL             string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		DbDriver:           getEnv("DB_DRIVER", DriverMySQL),
		DbHost:             getEnv("MYSQL_HOST", "db"),
		DbPort:             getEnv("MYSQL_PORT", "3306"),
		DbUser:             getEnv("MYSQL_USER", "taskboard"),
		DbPassword:         getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:             getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:           getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		SQLitePath:         getEnv("SQLITE_PATH", "taskboard.db"),
		TrustedProxies:     parseList(os.Getenv("TRUSTED_PROXIES")),
		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TranslationFolder:  getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		SuggestBackend:     getEnv("SUGGEST_BACKEND", SuggestHeuristic),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		APIURL:             getEnv("TASKBOARD_API_URL", "http://127.0.0.1:8080/api"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	duration, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

// parseList splits a comma separated env value, dropping blanks.
func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
