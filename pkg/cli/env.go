package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv loads .env from the working directory. A missing file is fine;
// variables already set in the environment are never overwritten.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger(ComponentCLI).Warn("could not read .env", "err", err)
	}
}

// Getenv returns the value of the environment variable key if set.
// If not set, and key + "_FILE" is set, the file at that path is read and
// its trimmed contents are returned. If neither are set, def is returned.
func Getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return def
}

// GetInt parses Getenv(key). Unset or unparsable values yield def.
func GetInt(key string, def int) int {
	if val := Getenv(key, ""); val != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return def
}

// GetFloat parses Getenv(key). Unset or unparsable values yield def.
func GetFloat(key string, def float64) float64 {
	if val := Getenv(key, ""); val != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return def
}

// GetBool returns the boolean value of key using the same truthy/falsy
// forms the settings editor accepts. Anything else yields def.
func GetBool(key string, def bool) bool {
	if val := Getenv(key, ""); val != "" {
		if s, err := parseBoolLikeToString(val); err == nil {
			return s == "true"
		}
	}
	return def
}
