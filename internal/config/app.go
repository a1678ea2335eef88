package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultMaxUploadBytes ограничивает размер загружаемой таблицы (10 MiB)
const DefaultMaxUploadBytes int64 = 10 << 20

type AppConfig struct {
	OpenAI    OpenAIConfig
	Interview InterviewConfig
	Log       LogConfig
}

type InterviewConfig struct {
	TasksFile      string
	ResultsDir     string
	MaxUploadBytes int64
}

type LogConfig struct {
	Level string
	File  string
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		OpenAI: *LoadOpenAIConfig(),
		Interview: InterviewConfig{
			TasksFile:      getEnv("TASKS_FILE", "config/tasks.yaml"),
			ResultsDir:     getEnv("RESULTS_DIR", "results"),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "interviewer.log"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
