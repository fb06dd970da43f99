package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	SqlGen   SqlGenConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host        string
	Port        int
	Email       string
	Password    string
	SenderName  string
	NotifyEmail string // reporting inbox for publish notifications; empty disables
}

type SqlGenConfig struct {
	Provider       string // "template" or "ollama"
	OllamaBaseURL  string
	Model          string
	DefaultTable   string
	TimeoutSeconds int
}

type EventsConfig struct {
	WorkflowTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Email:       getEnv("SMTP_EMAIL", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			SenderName:  getEnv("SMTP_SENDER_NAME", "ReportService"),
			NotifyEmail: getEnv("PUBLISH_NOTIFY_EMAIL", ""),
		},
		SqlGen: SqlGenConfig{
			Provider:       getEnv("SQLGEN_PROVIDER", "template"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:          getEnv("SQLGEN_MODEL", "llama3"),
			DefaultTable:   getEnv("SQLGEN_DEFAULT_TABLE", "report_data"),
			TimeoutSeconds: getEnvAsInt("SQLGEN_TIMEOUT_SECONDS", 60),
		},
		Events: EventsConfig{
			WorkflowTopic: getEnv("WORKFLOW_EVENTS_TOPIC", "REPORT_WORKFLOW_EVENTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
