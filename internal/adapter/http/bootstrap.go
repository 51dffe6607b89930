package http

import (
	"log/slog"
	"net/http"
	"time"

	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/core/telemetry"
	"todoapi/pkg"
	"todoapi/pkg/config"
)

func StartServer(metrics *telemetry.AppMetrics, logger *config.LokiLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) {
	container, err := NewContainer(logger, appConfig)

	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return
	}

	defer container.Close()

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler:  container.AuthHandler,
		TodoHandler:  container.TodoHandler,
		SessionStore: container.Sessions,
	}, metrics, logger, appConfig)

	port := pkg.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", appConfig.Environment,
		"rate_limit_enabled", appConfig.RateLimitEnabled,
		"https_enforced", appConfig.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
