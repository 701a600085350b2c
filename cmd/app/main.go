package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"edanalyzer/internal/pkg/cache"
	"edanalyzer/internal/pkg/config"
	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/manager"
	"edanalyzer/internal/pkg/report"
	"edanalyzer/internal/pkg/scoring"
	"edanalyzer/internal/pkg/sink"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	weights, err := scoring.LoadWeights(cfg.WeightsFile)
	if err != nil {
		logger.Log.Fatal("Failed to load indicator weights", zap.Error(err))
	}

	// The cache is optional: without Redis every request runs the full
	// pipeline and results are not retrievable over /result.
	resultCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		logger.Log.Warn("Running without result cache", zap.Error(err))
		resultCache = nil
	}

	var resultSink *sink.BulkSink
	if cfg.SinkURL != "" {
		resultSink = sink.NewBulkSink(
			cfg.SinkURL,
			cfg.SinkIndex,
			cfg.SinkThreshold,
			time.Duration(cfg.SinkFlushInterval)*time.Second,
		)
	}

	concluder := report.NewOpenAIConcluder(cfg.OpenAIAPIKey, cfg.ConclusionModel)

	mgr := manager.New(collaborators(cfg), concluder, weights, cfg.MinCriteriaCount)

	service, err := manager.NewService(cfg, mgr, resultCache, resultSink)
	if err != nil {
		logger.Log.Fatal("Failed to create analysis service", zap.Error(err))
	}

	// Create a cancellable context so we can gracefully shut down.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go service.Start(ctx, cfg.ServerPort)

	// Listen for OS signals to gracefully shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	s := <-sigChan
	logger.Log.Info("Received shutdown signal", zap.String("signal", s.String()))
	cancel()

	service.Stop()

	// Give some time for cleanup if needed
	time.Sleep(2 * time.Second)
	logger.Log.Info("Shutdown complete")
}

// collaborators assembles the enrichment pipeline. Upstream analyzers
// (crawler, link checker, FAIR checker and friends) are separate
// services; slots stay nil until their clients are plugged in here, and
// the manager degrades gracefully for every nil slot.
func collaborators(cfg *config.Config) manager.Collaborators {
	return manager.Collaborators{}
}
