package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	server "todoapi/internal/adapter/http"
	"todoapi/internal/core/telemetry"
	. "todoapi/pkg/config"
)

func main() {
	ctx := context.Background()

	logger, err := NewLokiLogger("todoapi", "http://localhost:3100")

	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}

	defer logger.Sync()

	stack, err := telemetry.InitTelemetry(telemetry.TelemetryConfig{
		ServiceName:    "todoapi",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   "localhost:4317",
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer stack.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(stack.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		config := GetDefaultConfig()

		if os.Getenv("GIN_MODE") == "release" {
			config.Environment = "production"
			config.EnforceHTTPS = true
		}

		server.StartServerWithConfig(metrics, logger, config)
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
