package bulk

import (
	"context"
	"fmt"

	"productapi/internal/logger"
	"productapi/internal/models"
	wc "productapi/internal/services/woocommerce"
)

// ProductCreator creates a single product from a draft.
type ProductCreator interface {
	CreateProduct(ctx context.Context, draft *models.ProductDraft) (*wc.Product, error)
}

// Result holds the aggregate outcome of a bulk insert.
type Result struct {
	SuccessCount int    `json:"successCount"`
	ErrorCount   int    `json:"errorCount"`
	Message      string `json:"message"`
}

// Sequencer submits drafts one at a time, in input order.
type Sequencer struct {
	creator ProductCreator
	logger  *logger.Logger
}

func NewSequencer(creator ProductCreator, logger *logger.Logger) *Sequencer {
	return &Sequencer{
		creator: creator,
		logger:  logger,
	}
}

// BulkInsert creates every eligible draft and returns only the tallies.
// Drafts without a name or regular price are skipped and counted nowhere.
// A failed creation is counted and the loop moves on.
func (s *Sequencer) BulkInsert(ctx context.Context, drafts []models.ProductDraft) Result {
	var result Result
	skipped := 0

	for i := range drafts {
		draft := &drafts[i]
		if !draft.IsEligible() {
			skipped++
			continue
		}

		if _, err := s.creator.CreateProduct(ctx, draft); err != nil {
			result.ErrorCount++
			s.logger.Debug("Bulk item %d (%q) failed: %v", i+1, draft.Name, err)
			continue
		}
		result.SuccessCount++
	}

	result.Message = fmt.Sprintf("Bulk insert completed: %d successful, %d failed", result.SuccessCount, result.ErrorCount)
	s.logger.Info("%s (%d skipped)", result.Message, skipped)
	return result
}
