package models

import "productapi/internal/apperrors"

// CategoryInput is the operator-supplied data for a new catalog category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Parent      int    `json:"parent,omitempty"`
}

func (c *CategoryInput) Validate() error {
	if c == nil || c.Name == "" {
		return apperrors.NewValidationError("Category name is required", "name")
	}
	return nil
}
