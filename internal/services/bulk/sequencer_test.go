package bulk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"productapi/internal/logger"
	"productapi/internal/models"
	wc "productapi/internal/services/woocommerce"
)

type MockProductCreator struct {
	mock.Mock
}

func (m *MockProductCreator) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*wc.Product, error) {
	args := m.Called(ctx, draft.Name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wc.Product), args.Error(1)
}

func TestBulkInsert_FailureDoesNotAbort(t *testing.T) {
	creator := new(MockProductCreator)
	seq := NewSequencer(creator, logger.Nop())

	var order []string
	record := func(args mock.Arguments) { order = append(order, args.String(1)) }

	creator.On("CreateProduct", mock.Anything, "first").Run(record).Return(&wc.Product{ID: 1}, nil).Once()
	creator.On("CreateProduct", mock.Anything, "second").Run(record).Return(nil, errors.New("WooCommerce API error: 400 - bad")).Once()
	creator.On("CreateProduct", mock.Anything, "third").Run(record).Return(&wc.Product{ID: 3}, nil).Once()

	result := seq.BulkInsert(context.Background(), []models.ProductDraft{
		{Name: "first", RegularPrice: "1"},
		{Name: "second", RegularPrice: "2"},
		{Name: "third", RegularPrice: "3"},
	})

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "Bulk insert completed: 2 successful, 1 failed", result.Message)
	assert.Equal(t, []string{"first", "second", "third"}, order)
	creator.AssertExpectations(t)
}

func TestBulkInsert_SkipsIneligibleDrafts(t *testing.T) {
	creator := new(MockProductCreator)
	seq := NewSequencer(creator, logger.Nop())

	creator.On("CreateProduct", mock.Anything, "ok").Return(&wc.Product{ID: 1}, nil).Once()

	result := seq.BulkInsert(context.Background(), []models.ProductDraft{
		{Name: "", RegularPrice: "1"},
		{Name: "no price"},
		{Name: "ok", RegularPrice: "5"},
	})

	assert.Equal(t, Result{SuccessCount: 1, ErrorCount: 0, Message: "Bulk insert completed: 1 successful, 0 failed"}, result)
	creator.AssertNumberOfCalls(t, "CreateProduct", 1)
}

func TestBulkInsert_Empty(t *testing.T) {
	creator := new(MockProductCreator)
	seq := NewSequencer(creator, logger.Nop())

	result := seq.BulkInsert(context.Background(), nil)

	assert.Zero(t, result.SuccessCount)
	assert.Zero(t, result.ErrorCount)
	creator.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}
