package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"bank-ledger/pkg/api"
	"bank-ledger/pkg/audit"
	"bank-ledger/pkg/ledger"
	"bank-ledger/pkg/logging"
	promMetrics "bank-ledger/pkg/metrics/prometheus"
	"bank-ledger/pkg/resilience"
	"bank-ledger/pkg/storage/csv"
	"bank-ledger/pkg/writer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	dataDir := getEnv("BANKD_DATA_DIR", "data")
	address := getEnv("BANKD_ADDR", ":8080")

	logger.Info("starting bankd",
		zap.String("data_dir", dataDir),
		zap.String("address", address),
	)

	// Metrics
	collector := promMetrics.NewCollector("bank")
	registry := prometheus.NewRegistry()
	if err := collector.Register(registry); err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	// Persistence: CSV snapshots behind a circuit breaker
	fileStore, err := csv.NewFileStore(dataDir)
	if err != nil {
		logger.Fatal("failed to open data directory", zap.Error(err))
	}
	store := resilience.Wrap(fileStore, resilience.DefaultConfig(), collector)

	// Audit trail
	recorder := audit.NewFileRecorder(filepath.Join(dataDir, "audit.csv"))

	// Side-effect queue: one worker keeps saves and audit records ordered
	effects := writer.NewWithMetrics(writer.Config{}, collector)

	bank := ledger.New(ledger.Config{
		Store:   store,
		Audit:   recorder,
		Effects: effects,
		Logger:  logger,
		Metrics: collector,
	})
	if err := bank.Load(); err != nil {
		logger.Fatal("failed to load ledger state", zap.Error(err))
	}

	serverConfig := api.DefaultServerConfig()
	serverConfig.Address = address
	serverConfig.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := api.NewServer(bank, serverConfig)
	server.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	// Let pending saves and audit records land before exiting.
	if err := effects.Flush(5 * time.Second); err != nil {
		logger.Warn("side-effect queue did not drain", zap.Error(err))
	}
	effects.Close()

	logger.Info("stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
