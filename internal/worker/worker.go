package worker

import (
	"context"
	"errors"
	"io"
	"time"

	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Worker struct {
	logger    *logger.Logger
	reader    MessageReader
	processor *processors.EventProcessor
}

func New(cfg *config.Config, logger *logger.Logger, processor *processors.EventProcessor) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.BulkTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return NewWithReader(reader, logger, processor)
}

func NewWithReader(reader MessageReader, logger *logger.Logger, processor *processors.EventProcessor) *Worker {
	return &Worker{
		logger:    logger,
		reader:    reader,
		processor: processor,
	}
}

// Start consumes bulk jobs one at a time until ctx is cancelled or the
// reader is closed.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started, listening for bulk jobs...")

	for {
		message, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				w.logger.Info("Worker stopped")
				return
			}
			w.logger.Error("Failed to read message: %v", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		w.logger.Debug("Received message at offset %d", message.Offset)

		if _, err := w.processor.Process(ctx, message.Value); err != nil {
			w.logger.Error("Failed to process bulk job: %v", err)
			continue
		}
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
