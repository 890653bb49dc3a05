package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"productapi/internal/apperrors"
	"productapi/internal/events"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services/bulk"
	"productapi/internal/services/importer"
	wc "productapi/internal/services/woocommerce"

	"github.com/gin-gonic/gin"
)

type ProductService interface {
	ListProducts(ctx context.Context, page, perPage int) ([]wc.Product, error)
	CreateProduct(ctx context.Context, draft *models.ProductDraft) (*wc.Product, error)
}

type BulkInserter interface {
	BulkInsert(ctx context.Context, drafts []models.ProductDraft) bulk.Result
}

type JobPublisher interface {
	PublishBulkJob(ctx context.Context, source string, drafts []models.ProductDraft) (*events.BulkJob, error)
}

type ProductHandler struct {
	products  ProductService
	sequencer BulkInserter
	publisher JobPublisher
	logger    *logger.Logger
}

// NewProductHandler wires the product routes. publisher may be nil, in which
// case async bulk requests are rejected.
func NewProductHandler(products ProductService, sequencer BulkInserter, publisher JobPublisher, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products:  products,
		sequencer: sequencer,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	products, err := h.products.ListProducts(c.Request.Context(), page, perPage)
	if err != nil {
		h.logger.Error("Error fetching products: %v", err)
		respondError(c, err, []wc.Product{})
		return
	}

	respondOK(c, http.StatusOK, products, "Products fetched successfully")
}

func (h *ProductHandler) Create(c *gin.Context) {
	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), &draft)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	respondOK(c, http.StatusOK, product, fmt.Sprintf("Product '%s' created successfully", product.Name))
}

// Bulk accepts {"products": [...]} or a bare array. With ?async=true the
// drafts are queued for the worker instead of being created inline.
func (h *ProductHandler) Bulk(c *gin.Context) {
	drafts, err := importer.ParseJSON(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(drafts) == 0 {
		respondError(c, apperrors.NewValidationError("At least one product is required", "products"), nil)
		return
	}

	if async, _ := strconv.ParseBool(c.Query("async")); async {
		h.enqueue(c, "api", drafts)
		return
	}

	result := h.sequencer.BulkInsert(c.Request.Context(), drafts)
	respondOK(c, http.StatusOK, result, result.Message)
}

// Import creates products from an uploaded CSV, XLSX or JSON file.
func (h *ProductHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "File is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err), nil)
		return
	}
	defer file.Close()

	drafts, err := importer.ParseFile(header.Filename, file)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	h.logger.Info("Importing %d drafts from %s", len(drafts), header.Filename)

	if async, _ := strconv.ParseBool(c.Query("async")); async {
		h.enqueue(c, header.Filename, drafts)
		return
	}

	result := h.sequencer.BulkInsert(c.Request.Context(), drafts)
	respondOK(c, http.StatusOK, result, result.Message)
}

func (h *ProductHandler) enqueue(c *gin.Context, source string, drafts []models.ProductDraft) {
	if h.publisher == nil {
		respondError(c, &apperrors.ConfigError{Setting: "KAFKA_BROKERS", Message: "Kafka brokers not configured"}, nil)
		return
	}

	job, err := h.publisher.PublishBulkJob(c.Request.Context(), source, drafts)
	if err != nil {
		h.logger.Error("Failed to queue bulk job: %v", err)
		respondError(c, err, nil)
		return
	}

	respondOK(c, http.StatusAccepted, gin.H{"job_id": job.ID}, fmt.Sprintf("Bulk job queued with %d products", len(drafts)))
}
