package processors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services/bulk"
	wc "productapi/internal/services/woocommerce"
)

type stubCreator struct {
	fail map[string]bool
}

func (s *stubCreator) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*wc.Product, error) {
	if s.fail[draft.Name] {
		return nil, errors.New("upstream rejected")
	}
	return &wc.Product{Name: draft.Name}, nil
}

func TestEventProcessor_Process(t *testing.T) {
	seq := bulk.NewSequencer(&stubCreator{fail: map[string]bool{"bad": true}}, logger.Nop())
	ep := NewEventProcessor(seq, logger.Nop())

	payload := []byte(`{"id": "job-9", "drafts": [
		{"name": "good", "regular_price": "1"},
		{"name": "bad", "regular_price": "2"},
		{"name": "no price"}
	]}`)

	result, err := ep.Process(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
}

func TestEventProcessor_InvalidPayload(t *testing.T) {
	ep := NewEventProcessor(bulk.NewSequencer(&stubCreator{}, logger.Nop()), logger.Nop())

	_, err := ep.Process(context.Background(), []byte(`{`))
	assert.Error(t, err)
}
