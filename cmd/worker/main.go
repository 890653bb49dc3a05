package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"productapi/internal/config"
	woocommerceConnector "productapi/internal/connectors/woocommerce"
	"productapi/internal/logger"
	"productapi/internal/services/bulk"
	"productapi/internal/services/woocommerce"
	"productapi/internal/worker"
	"productapi/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.ForEnv(cfg.Env, cfg.LogLevel)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("KAFKA_BROKERS must be set to run the worker")
	}

	client := woocommerce.NewClient(cfg.WooCommerce, logger)
	sequencer := bulk.NewSequencer(woocommerceConnector.New(client, logger), logger)

	// Initialize worker
	w := worker.New(cfg, logger, processors.NewEventProcessor(sequencer, logger))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// Start worker
	logger.Info("Starting worker...")
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	<-done
	w.Stop()
}
