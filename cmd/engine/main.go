package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crypto-portfolio-go/internal/coingecko"
	"crypto-portfolio-go/internal/config"
	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/engine"
	"crypto-portfolio-go/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Initialize CoinGecko price feed
	feed := coingecko.NewRestClient(&cfg.CoinGecko, log)
	if err := feed.Ping(); err != nil {
		log.Fatal("Failed to connect to CoinGecko API", zap.Error(err))
	}
	log.Info("Successfully connected to CoinGecko API.")

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Key material is threaded explicitly into the executor; nothing holds
	// it globally.
	creds := engine.Credentials{
		APIKey:    cfg.Executor.ApiKey,
		SecretKey: cfg.Executor.SecretKey,
	}
	executor := engine.NewPaperExecutor(creds, cfg.Engine.FeeRate, log)
	notifier := engine.NewConsoleNotifier(log)

	// Initialize and run the decision engine
	decisionEngine := engine.NewEngine(log, &cfg, feed, db, notifier, executor)
	decisionEngine.Run(ctx)

	log.Info("Engine has been shut down.")
}
