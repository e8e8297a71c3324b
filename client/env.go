package client

import (
	"os"
	"strconv"
)

// FromEnv builds a Config from the YIELDROUTE_* environment variables. It is
// a convenience for example scripts and small tools; programs embedding the
// SDK should construct Config directly.
func FromEnv() Config {
	return Config{
		APIKey:        os.Getenv("YIELDROUTE_API_KEY"),
		BaseURL:       getEnvOrDefault("YIELDROUTE_BASE_URL", DefaultBaseURL),
		ChainID:       getEnvAsInt64("YIELDROUTE_CHAIN_ID", 1),
		Mode:          Mode(getEnvOrDefault("YIELDROUTE_MODE", string(ModeDirect))),
		RouterAddress: os.Getenv("YIELDROUTE_ROUTER_ADDRESS"),
	}
}

// getEnvOrDefault retrieves an environment variable or returns the default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as an integer with a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
