package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services/bulk"
	wc "productapi/internal/services/woocommerce"
)

type stubCatalog struct{}

func (stubCatalog) ListProducts(ctx context.Context, page, perPage int) ([]wc.Product, error) {
	return []wc.Product{{ID: 1, Name: "Mug"}}, nil
}

func (stubCatalog) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*wc.Product, error) {
	return &wc.Product{ID: 2, Name: draft.Name}, nil
}

func (stubCatalog) ListCategories(ctx context.Context, opts wc.CategoryListOptions) ([]wc.Category, error) {
	return []wc.Category{}, nil
}

func (stubCatalog) CreateCategory(ctx context.Context, input models.CategoryInput) (*wc.Category, error) {
	return &wc.Category{ID: 3, Name: input.Name}, nil
}

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, prompt string, categories []models.CategoryRef) (*models.ProductDraft, error) {
	return &models.ProductDraft{Name: prompt}, nil
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)

	catalog := stubCatalog{}
	deps := &Dependencies{
		Products:   catalog,
		Categories: catalog,
		Sequencer:  bulk.NewSequencer(catalog, logger.Nop()),
		Generator:  stubGenerator{},
	}
	return New(&config.Config{Env: "test"}, logger.Nop(), deps)
}

func TestServer_Routes(t *testing.T) {
	router := newTestServer().GetRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"root", http.MethodGet, "/", "", http.StatusOK},
		{"list products", http.MethodGet, "/api/products", "", http.StatusOK},
		{"create product", http.MethodPost, "/api/products", `{"name": "Mug", "regular_price": "5"}`, http.StatusOK},
		{"bulk", http.MethodPost, "/api/products/bulk", `[{"name": "Mug", "regular_price": "5"}]`, http.StatusOK},
		{"bulk async without kafka", http.MethodPost, "/api/products/bulk?async=1", `[{"name": "Mug", "regular_price": "5"}]`, http.StatusInternalServerError},
		{"list categories", http.MethodGet, "/api/categories", "", http.StatusOK},
		{"create category", http.MethodPost, "/api/categories", `{"name": "Lamps"}`, http.StatusOK},
		{"ai generate", http.MethodPost, "/api/ai-generate", `{"prompt": "lamp"}`, http.StatusOK},
		{"unknown", http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestServer_StopWithoutStart(t *testing.T) {
	assert.NoError(t, newTestServer().Stop(context.Background()))
}

func TestDependencies_CloseLogsFailures(t *testing.T) {
	var logs bytes.Buffer
	closed := 0
	deps := &Dependencies{
		logger: logger.NewJSON("info", &logs),
		closers: []func() error{
			func() error { closed++; return errors.New("kafka flush timed out") },
			func() error { closed++; return nil },
		},
	}

	deps.Close()

	assert.Equal(t, 2, closed)
	assert.Contains(t, logs.String(), "Failed to close dependency: kafka flush timed out")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}
