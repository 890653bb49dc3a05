package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"productapi/internal/logger"
	"productapi/internal/models"
	wc "productapi/internal/services/woocommerce"

	"github.com/gin-gonic/gin"
)

type CategoryService interface {
	ListCategories(ctx context.Context, opts wc.CategoryListOptions) ([]wc.Category, error)
	CreateCategory(ctx context.Context, input models.CategoryInput) (*wc.Category, error)
}

type CategoryHandler struct {
	categories CategoryService
	logger     *logger.Logger
}

func NewCategoryHandler(categories CategoryService, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	opts := wc.DefaultCategoryListOptions()
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		opts.PerPage = perPage
	}
	opts.OrderBy = c.DefaultQuery("orderby", opts.OrderBy)
	opts.Order = c.DefaultQuery("order", opts.Order)

	categories, err := h.categories.ListCategories(c.Request.Context(), opts)
	if err != nil {
		h.logger.Error("Error fetching categories: %v", err)
		respondError(c, err, []wc.Category{})
		return
	}

	respondOK(c, http.StatusOK, categories, "Categories fetched successfully")
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	respondOK(c, http.StatusOK, category, fmt.Sprintf("Category '%s' created successfully", category.Name))
}
