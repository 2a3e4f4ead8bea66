package env

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Init loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}
}

func GetString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			slog.Warn("env must be integer, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return i
	}
	return fallback
}
