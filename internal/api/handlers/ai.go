package handlers

import (
	"context"
	"net/http"

	"productapi/internal/logger"
	"productapi/internal/models"

	"github.com/gin-gonic/gin"
)

type DraftGenerator interface {
	Generate(ctx context.Context, prompt string, categories []models.CategoryRef) (*models.ProductDraft, error)
}

type GenerateRequest struct {
	Prompt     string               `json:"prompt"`
	Categories []models.CategoryRef `json:"categories"`
}

type AIHandler struct {
	generator DraftGenerator
	logger    *logger.Logger
}

func NewAIHandler(generator DraftGenerator, logger *logger.Logger) *AIHandler {
	return &AIHandler{
		generator: generator,
		logger:    logger,
	}
}

// Generate drafts a product from a free-text prompt. When the model output
// cannot be parsed the raw text is returned for manual recovery.
func (h *AIHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.generator.Generate(c.Request.Context(), req.Prompt, req.Categories)
	if err != nil {
		h.logger.Error("Error generating product: %v", err)
		respondError(c, err, nil)
		return
	}

	respondOK(c, http.StatusOK, draft, "Product data generated successfully")
}
