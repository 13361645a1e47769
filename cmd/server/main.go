package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/config"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// reapInterval is how often idle sessions and empty event hubs are cleaned up
const reapInterval = time.Minute

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Println("Usage: server\n\nConfiguration is read from the environment, or from the YAML file named by CONFIG_FILE.")
		fmt.Println(config.Usage())
		return
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		ThinkDelay:  cfg.ThinkDelay,
	}
	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := cfg.RedisConfig()
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	// API first so /api/v1 is matched before the page routes
	router := mux.NewRouter()
	api.RegisterRoutes(router, api.RouterConfig{
		Logger:     logger,
		Sessions:   app.Sessions,
		HubManager: app.HubManager,
	})
	web.RegisterRoutes(router, web.RouterConfig{
		Logger:     logger,
		Sessions:   app.Sessions,
		HubManager: app.HubManager,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.HTTP.Host
	serverConfig.Port = cfg.HTTP.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go reapLoop(ctx, app, cfg.Storage.SessionTTL, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Ending sessions closes their event streams so Shutdown is not
		// held open by connected browsers
		app.Sessions.Shutdown()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}

func reapLoop(ctx context.Context, app *factory.App, maxIdle time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.Sessions.ReapIdle(ctx, maxIdle)
			if n := app.HubManager.CleanupEmptyHubs(); n > 0 {
				logger.Debug("removed empty hubs", slog.Int("count", n))
			}
		}
	}
}
