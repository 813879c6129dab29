package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swms/swms-console/internal/app"
	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/console"
	"github.com/swms/swms-console/internal/observability"
	"github.com/swms/swms-console/internal/platform/cache"
	"github.com/swms/swms-console/internal/shared"
	"github.com/swms/swms-console/internal/swms"
	"github.com/swms/swms-console/internal/view"
)

// sessionCredentials hands the transport the Auth Context of the page
// request making the call.
func sessionCredentials(ctx context.Context) swms.Credentials {
	ac, ok := auth.Lookup(ctx)
	if !ok {
		return nil
	}
	return ac
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "swms_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	api, err := swms.NewClient(swms.Options{
		BaseURL:     cfg.APIURL,
		Timeout:     cfg.APITimeout,
		Credentials: sessionCredentials,
		Logger:      logger.With(slog.String("component", "swms")),
		Recorder:    metrics,
	})
	if err != nil {
		logger.Error("configure swms client", slog.Any("error", err))
		os.Exit(1)
	}

	consoleHandler := console.NewHandler(logger, api, templates, sessionManager, csrfManager)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Console:        consoleHandler,
		Metrics:        metrics,
		Health:         cache.Probe{Client: redisClient},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("api", cfg.APIURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
