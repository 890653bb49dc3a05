package processors

import (
	"context"
	"encoding/json"
	"fmt"

	"productapi/internal/events"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services/bulk"
)

// BulkInserter runs a bulk insert and reports the tallies.
type BulkInserter interface {
	BulkInsert(ctx context.Context, drafts []models.ProductDraft) bulk.Result
}

type EventProcessor struct {
	sequencer BulkInserter
	logger    *logger.Logger
}

func NewEventProcessor(sequencer BulkInserter, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		sequencer: sequencer,
		logger:    logger,
	}
}

// Process decodes a bulk job message and runs it through the sequencer.
// Item failures are part of the result, not an error.
func (ep *EventProcessor) Process(ctx context.Context, payload []byte) (*bulk.Result, error) {
	var job events.BulkJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("failed to parse bulk job: %w", err)
	}

	ep.logger.Info("Processing bulk job %s (%d drafts, source=%s)", job.ID, len(job.Drafts), job.Source)

	result := ep.sequencer.BulkInsert(ctx, job.Drafts)

	ep.logger.Info("Bulk job %s finished: %d successful, %d failed", job.ID, result.SuccessCount, result.ErrorCount)
	return &result, nil
}
