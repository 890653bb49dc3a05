package woocommerce

import (
	"context"

	"productapi/internal/logger"
	"productapi/internal/models"
	wc "productapi/internal/services/woocommerce"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// CatalogClient is the subset of the WooCommerce REST client the connector
// depends on.
type CatalogClient interface {
	ListProducts(ctx context.Context, page, perPage int) ([]wc.Product, error)
	CreateProduct(ctx context.Context, payload *wc.ProductPayload) (*wc.Product, error)
	ListCategories(ctx context.Context, opts wc.CategoryListOptions) ([]wc.Category, error)
	CreateCategory(ctx context.Context, req wc.CreateCategoryRequest) (*wc.Category, error)
}

// WooCommerceConnector adapts operator drafts and category input to the
// catalog API.
type WooCommerceConnector struct {
	client CatalogClient
	logger *logger.Logger
}

func New(client CatalogClient, logger *logger.Logger) *WooCommerceConnector {
	return &WooCommerceConnector{
		client: client,
		logger: logger,
	}
}

// ListProducts returns one page of products, exactly as requested.
func (c *WooCommerceConnector) ListProducts(ctx context.Context, page, perPage int) ([]wc.Product, error) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	c.logger.Debug("Fetching products page=%d per_page=%d", page, perPage)
	return c.client.ListProducts(ctx, page, perPage)
}

// CreateProduct normalizes the draft and creates it in the catalog. Drafts
// missing a required field are rejected before any request is made.
func (c *WooCommerceConnector) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*wc.Product, error) {
	payload, err := wc.Normalize(draft)
	if err != nil {
		return nil, err
	}

	product, err := c.client.CreateProduct(ctx, payload)
	if err != nil {
		c.logger.Error("Failed to create product %q: %v", draft.Name, err)
		return nil, err
	}

	c.logger.Info("Created product %d (%s)", product.ID, product.Name)
	return product, nil
}

func (c *WooCommerceConnector) ListCategories(ctx context.Context, opts wc.CategoryListOptions) ([]wc.Category, error) {
	defaults := wc.DefaultCategoryListOptions()
	if opts.PerPage < 1 {
		opts.PerPage = defaults.PerPage
	}
	if opts.OrderBy == "" {
		opts.OrderBy = defaults.OrderBy
	}
	if opts.Order == "" {
		opts.Order = defaults.Order
	}
	return c.client.ListCategories(ctx, opts)
}

// CreateCategory creates a category; description, slug and parent are only
// sent when provided.
func (c *WooCommerceConnector) CreateCategory(ctx context.Context, input models.CategoryInput) (*wc.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	category, err := c.client.CreateCategory(ctx, wc.CreateCategoryRequest{
		Name:        input.Name,
		Description: input.Description,
		Slug:        input.Slug,
		Parent:      input.Parent,
	})
	if err != nil {
		c.logger.Error("Failed to create category %q: %v", input.Name, err)
		return nil, err
	}

	c.logger.Info("Created category %d (%s)", category.ID, category.Name)
	return category, nil
}
