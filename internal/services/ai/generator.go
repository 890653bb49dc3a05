package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"productapi/internal/apperrors"
	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/models"
)

const serviceName = "OpenAI"

// Used when the caller does not pass the store's categories.
var fallbackCategories = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books"}

// Generator drafts product listings from free-text prompts.
type Generator struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      *logger.Logger
}

// OpenAI API structures
type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message Message `json:"message"`
}

type openAIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func New(cfg config.OpenAIConfig, logger *logger.Logger) *Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1500
	}

	return &Generator{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Generate asks the model for a product draft. Output differs between runs.
// When the completion is not a draft document the returned *apperrors.ParseError
// carries the raw text.
func (g *Generator) Generate(ctx context.Context, prompt string, categories []models.CategoryRef) (*models.ProductDraft, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apperrors.NewValidationError("Prompt is required", "prompt")
	}
	if g.apiKey == "" {
		return nil, &apperrors.ConfigError{Setting: "OPENAI_API_KEY", Message: "OpenAI API key not configured"}
	}

	g.logger.Debug("Generating product draft for prompt: %s", prompt)

	response, err := g.callOpenAI(ctx, BuildSystemPrompt(categories), prompt)
	if err != nil {
		return nil, err
	}

	draft, err := ParseDraft(response)
	if err != nil {
		g.logger.Error("Failed to parse AI response: %v", err)
		return nil, err
	}

	return draft, nil
}

// BuildSystemPrompt embeds the expected document shape and the category
// names the model should choose from.
func BuildSystemPrompt(categories []models.CategoryRef) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		names = fallbackCategories
	}

	return fmt.Sprintf(`You are an e-commerce catalog specialist who writes WooCommerce product listings.

Reply with a single JSON object and nothing else, using this structure:
{
  "name": "Product Name",
  "regular_price": "29.99",
  "sale_price": "24.99",
  "sku": "PROD-001",
  "description": "Detailed product description with HTML formatting",
  "short_description": "Brief product summary",
  "weight": "1.5",
  "length": "10",
  "width": "5",
  "height": "3",
  "manage_stock": true,
  "stock_quantity": 100,
  "stock_status": "instock",
  "type": "simple",
  "status": "publish",
  "categories": [{"id": 1, "name": "Category Name"}],
  "seo": {
    "title": "SEO title",
    "description": "Meta description",
    "keywords": "keyword1, keyword2, keyword3",
    "focus_keyword": "main keyword"
  }
}

Rules:
- Write realistic, sellable product data with sensible pricing.
- Descriptions should be persuasive and formatted with simple HTML.
- Pick categories from: %s
- SKUs should be unique and meaningful.
- Use plausible dimensions and weight.
- The focus keyword is the main search term for the product.
- Keep the meta description between 150 and 160 characters.`, strings.Join(names, ", "))
}

// ParseDraft decodes a completion into a draft. A surrounding markdown code
// fence is tolerated; anything that is not a JSON object is rejected.
func ParseDraft(raw string) (*models.ProductDraft, error) {
	content := stripCodeFence(strings.TrimSpace(raw))
	if !strings.HasPrefix(content, "{") {
		return nil, &apperrors.ParseError{Raw: raw, Err: fmt.Errorf("response is not a JSON object")}
	}

	var draft models.ProductDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, &apperrors.ParseError{Raw: raw, Err: err}
	}
	return &draft, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// callOpenAI - Make API call to OpenAI
func (g *Generator) callOpenAI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	request := OpenAIRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := http.StatusText(resp.StatusCode)
		var apiErr openAIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		return "", &apperrors.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode, Message: message}
	}

	var openAIResp OpenAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(openAIResp.Choices) == 0 || openAIResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
