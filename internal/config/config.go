package config

import (
	"os"
	"strconv"

	"github.com/yukikurage/task-tracker/internal/constants"
)

type Config struct {
	Port                  string
	GinMode               string
	StoreDriver           string
	TasksFile             string
	SQLitePath            string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	UploadDir             string
	MaxUploadMB           int64
	OverdueReportSchedule string
	OpenAIAPIKey          string
}

func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "3000"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		StoreDriver:           getEnv("STORE_DRIVER", constants.StoreDriverFile),
		TasksFile:             getEnv("TASKS_FILE", "tasks.json"),
		SQLitePath:            getEnv("SQLITE_PATH", "tasks.db"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "3306"),
		DBUser:                getEnv("DB_USER", "taskuser"),
		DBPassword:            getEnv("DB_PASSWORD", "taskpassword"),
		DBName:                getEnv("DB_NAME", "task_tracker"),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:           getEnvInt("MAX_UPLOAD_MB", constants.DefaultMaxUploadMB),
		OverdueReportSchedule: getEnv("OVERDUE_REPORT_SCHEDULE", "0 0 9 * * *"),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
