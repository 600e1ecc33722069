package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/notetakerai/notetaker"
	"github.com/notetakerai/notetaker/internal/config"
	"github.com/notetakerai/notetaker/internal/errortypes"
	"github.com/notetakerai/notetaker/internal/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFilename, "path to the configuration file")
	flag.Parse()

	// Load provider API keys from a .env file if one exists. Missing
	// files are fine; the environment may already carry the keys.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Setup(config.DefaultLogLevel, config.DefaultLogFormat)
		errortypes.LogError(nil, errortypes.ConfigError(err, "Failed to load .env file"))
		os.Exit(1)
	}

	cfg, err := config.LoadConfigWithPath(*configPath)
	if err != nil {
		logger.Setup(config.DefaultLogLevel, config.DefaultLogFormat)
		errortypes.LogError(nil, errortypes.ConfigError(err, "Failed to load configuration"))
		os.Exit(1)
	}

	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Notetaker MCP Server - Starting...", "config", cfg.GetConfigPath())

	srv, err := notetaker.NewServer(notetaker.ServerOptions{
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		errortypes.LogError(log, err)
		os.Exit(1)
	}

	setupSignalHandler(srv)

	// Start blocks until the stdio transport is closed.
	log.Info("Starting MCP server...")
	if err := srv.Start(); err != nil {
		errortypes.LogError(log, errortypes.APIError(err, "MCP server failed"))
		os.Exit(1)
	}
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(srv *notetaker.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		if err := srv.Stop(); err != nil {
			errortypes.LogError(nil, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
}
