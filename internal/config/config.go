package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	// ProfilePath is where the one-element user profile entry lives.
	ProfilePath string
}

type BackendConfig struct {
	// BaseURL of the assistant backend exposing the conversation and
	// history endpoints.
	BaseURL        string
	RequestTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/client.log"),
			ProfilePath: getEnv("PROFILE_PATH", "userinfo.json"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
			RequestTimeout: time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 120)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
