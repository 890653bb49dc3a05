package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"productapi/internal/apperrors"
	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/models"
)

// BulkJob is one queued bulk insert. The worker processes its drafts in order.
type BulkJob struct {
	ID          string                `json:"id"`
	Source      string                `json:"source,omitempty"`
	Drafts      []models.ProductDraft `json:"drafts"`
	SubmittedAt time.Time             `json:"submitted_at"`
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer MessageWriter
	logger *logger.Logger
}

// NewPublisher connects a writer to the bulk job topic.
func NewPublisher(cfg config.KafkaConfig, logger *logger.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, &apperrors.ConfigError{Setting: "KAFKA_BROKERS", Message: "Kafka brokers not configured"}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.BulkTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return NewPublisherWithWriter(writer, logger), nil
}

func NewPublisherWithWriter(writer MessageWriter, logger *logger.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishBulkJob queues drafts for the worker and returns the queued job.
func (p *Publisher) PublishBulkJob(ctx context.Context, source string, drafts []models.ProductDraft) (*BulkJob, error) {
	job := &BulkJob{
		ID:          uuid.New().String(),
		Source:      source,
		Drafts:      drafts,
		SubmittedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bulk job: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.ID),
		Value: value,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish bulk job: %w", err)
	}

	p.logger.Info("Queued bulk job %s with %d drafts", job.ID, len(drafts))
	return job, nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
