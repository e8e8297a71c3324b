// Package main is a small example program for the YieldRoute SDK: it loads
// configuration from the environment, checks backend health, and asks for a
// yield recommendation.
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/internal/telemetry"
)

func main() {
	setupLogging()

	shutdown := telemetry.InitTracer(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	defer shutdown()

	cfg := client.FromEnv()
	cfg.RequestsPerSecond = getEnvFloat("YIELDROUTE_RPS", 0)
	cfg.FailureThreshold = getEnvInt("YIELDROUTE_FAILURE_THRESHOLD", 0)

	api, err := client.New(cfg)
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := api.Health(ctx); err != nil {
		logrus.Fatalf("Backend unavailable: %v", err)
	}
	logrus.Info("Backend healthy")

	asset := getEnvOrDefault("YIELDROUTE_ASSET", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	amount := getEnvOrDefault("YIELDROUTE_AMOUNT", "1000000000")

	resp, err := api.OptimizeYield(ctx, client.YieldRequest{
		Asset:  asset,
		Amount: amount,
	})
	if err != nil {
		logrus.Fatalf("Yield optimization failed: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"protocol":   resp.Protocol,
		"action":     resp.Action,
		"apr":        resp.EstimatedAPR,
		"risk":       resp.RiskLevel,
		"confidence": resp.Confidence,
	}).Info("Recommendation received")

	if resp.Transaction != nil {
		logrus.Infof("Unsigned transaction targets %s", resp.Transaction.To)
	}
}
