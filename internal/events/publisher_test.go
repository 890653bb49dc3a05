package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/apperrors"
	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishBulkJob(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewPublisherWithWriter(writer, logger.Nop())

	drafts := []models.ProductDraft{
		{Name: "A", RegularPrice: "1", ManageStock: models.Some(false)},
		{Name: "B", RegularPrice: "2"},
	}

	job, err := publisher.PublishBulkJob(context.Background(), "api", drafts)
	require.NoError(t, err)

	_, err = uuid.Parse(job.ID)
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)
	assert.Equal(t, job.ID, string(writer.messages[0].Key))

	var decoded BulkJob
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, job.ID, decoded.ID)
	assert.Equal(t, "api", decoded.Source)
	require.Len(t, decoded.Drafts, 2)
	assert.Equal(t, models.Some(false), decoded.Drafts[0].ManageStock)
	assert.False(t, decoded.Drafts[1].ManageStock.Set)
	assert.False(t, decoded.Drafts[1].StockQuantity.Set)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestPublishBulkJob_WriteFailure(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	publisher := NewPublisherWithWriter(writer, logger.Nop())

	_, err := publisher.PublishBulkJob(context.Background(), "api", nil)
	assert.ErrorContains(t, err, "leader not available")
}

func TestNewPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewPublisher(config.KafkaConfig{BulkTopic: "product-bulk-jobs"}, logger.Nop())

	var configErr *apperrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "KAFKA_BROKERS", configErr.Setting)
}
