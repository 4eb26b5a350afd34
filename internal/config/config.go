package config

import (
	"os"
	"strconv"
)

type Config struct {
	DiscordBotToken    string
	AdminToken         string
	DatabasePath       string
	Port               string
	LogLevel           string
	PollIntervalSecs   int
	DispatchWorkers    int
	DispatchRatePerSec int
}

func Load() *Config {
	return &Config{
		DiscordBotToken:    getEnv("DISCORD_BOT_TOKEN", ""),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./locutus.db"),
		Port:               getEnv("PORT", "3000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PollIntervalSecs:   getEnvInt("POLL_INTERVAL_SECONDS", 60),
		DispatchWorkers:    getEnvInt("DISPATCH_WORKERS", 4),
		DispatchRatePerSec: getEnvInt("DISPATCH_RATE_PER_SEC", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
