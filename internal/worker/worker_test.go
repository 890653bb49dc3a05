package worker

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/events"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services/bulk"
	"productapi/internal/worker/processors"
)

type fakeReader struct {
	messages []kafka.Message
	closed   bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type recordingInserter struct {
	mu    sync.Mutex
	names [][]string
}

func (r *recordingInserter) BulkInsert(ctx context.Context, drafts []models.ProductDraft) bulk.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for _, d := range drafts {
		names = append(names, d.Name)
	}
	r.names = append(r.names, names)
	return bulk.Result{SuccessCount: len(drafts)}
}

func jobMessage(t *testing.T, job events.BulkJob) kafka.Message {
	t.Helper()
	value, err := json.Marshal(job)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(job.ID), Value: value}
}

func TestWorker_ProcessesJobsInOrder(t *testing.T) {
	inserter := &recordingInserter{}
	reader := &fakeReader{messages: []kafka.Message{
		jobMessage(t, events.BulkJob{ID: "job-1", Drafts: []models.ProductDraft{{Name: "a"}, {Name: "b"}}}),
		{Value: []byte("not json")},
		jobMessage(t, events.BulkJob{ID: "job-2", Drafts: []models.ProductDraft{{Name: "c"}}}),
	}}

	w := NewWithReader(reader, logger.Nop(), processors.NewEventProcessor(inserter, logger.Nop()))
	w.Start(context.Background())

	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, inserter.names)

	w.Stop()
	assert.True(t, reader.closed)
}
