package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Helper functions for environment variables and logging setup

// setupLogging configures the logging for the example program
func setupLogging() {
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))

	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// getEnvOrDefault returns the value of an environment variable or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer from an environment variable or returns the default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			logrus.Warnf("Invalid integer in %s: %v, using default: %v", key, err, defaultValue)
		}
	}
	return defaultValue
}

// getEnvFloat parses a float from an environment variable or returns the default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		} else {
			logrus.Warnf("Invalid float in %s: %v, using default: %v", key, err, defaultValue)
		}
	}
	return defaultValue
}
