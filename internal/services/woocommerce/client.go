package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"productapi/internal/apperrors"
	"productapi/internal/config"
	"productapi/internal/logger"

	"golang.org/x/time/rate"
)

const serviceName = "WooCommerce"

// Client talks to the WooCommerce REST API (wc/v3) with a static
// consumer key/secret pair sent as HTTP Basic credentials.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *logger.Logger
}

func NewClient(cfg config.WooCommerceConfig, logger *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, page, perPage int) ([]Product, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// CreateProduct creates a product from an already normalized payload.
func (c *Client) CreateProduct(ctx context.Context, payload *ProductPayload) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches product categories.
func (c *Client) ListCategories(ctx context.Context, opts CategoryListOptions) ([]Category, error) {
	q := url.Values{}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.OrderBy != "" {
		q.Set("orderby", opts.OrderBy)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}

	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/products/categories", q, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// CreateCategory creates a product category.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/products/categories", nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.consumerKey == "" || c.consumerSecret == "" {
		return &apperrors.ConfigError{
			Setting: "WOOCOMMERCE_CONSUMER_KEY/WOOCOMMERCE_CONSUMER_SECRET",
			Message: "WooCommerce API credentials not configured",
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("WooCommerce %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newUpstreamError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newUpstreamError prefers the WordPress error message and falls back to
// the HTTP status text.
func newUpstreamError(status int, body []byte) *apperrors.UpstreamError {
	message := http.StatusText(status)

	var payload errorBody
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		message = payload.Message
	}

	return &apperrors.UpstreamError{
		Service:    serviceName,
		StatusCode: status,
		Message:    message,
	}
}
