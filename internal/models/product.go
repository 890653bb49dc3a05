package models

import (
	"encoding/json"

	"productapi/internal/apperrors"
)

// ProductDraft is a not-yet-submitted product, authored by an operator or
// generated by the AI draft generator. It is normalized once and discarded.
type ProductDraft struct {
	Name             string         `json:"name"`
	RegularPrice     FlexString     `json:"regular_price"`
	SalePrice        FlexString     `json:"sale_price,omitempty"`
	SKU              FlexString     `json:"sku,omitempty"`
	Description      string         `json:"description,omitempty"`
	ShortDescription string         `json:"short_description,omitempty"`
	Weight           FlexString     `json:"weight,omitempty"`
	Length           FlexString     `json:"length,omitempty"`
	Width            FlexString     `json:"width,omitempty"`
	Height           FlexString     `json:"height,omitempty"`
	ManageStock      Optional[bool] `json:"manage_stock"`
	StockQuantity    Optional[int]  `json:"stock_quantity"`
	StockStatus      StockStatus    `json:"stock_status,omitempty"`
	Type             ProductType    `json:"type,omitempty"`
	Status           ProductStatus  `json:"status,omitempty"`
	Categories       []CategoryRef  `json:"categories,omitempty"`
	Images           []ImageRef     `json:"images,omitempty"`
	SEO              *SEO           `json:"seo,omitempty"`
}

// CategoryRef is a weak reference to a category owned by the catalog.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts a quoted ID, which generated drafts often carry.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   flexInt `json:"id"`
		Name string  `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CategoryRef{ID: int(raw.ID), Name: raw.Name}
	return nil
}

// ImageRef references an existing media item by ID or a remote source URL.
type ImageRef struct {
	ID   int    `json:"id,omitempty"`
	Src  string `json:"src,omitempty"`
	Name string `json:"name,omitempty"`
	Alt  string `json:"alt,omitempty"`
}

func (i *ImageRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   flexInt `json:"id"`
		Src  string  `json:"src"`
		Name string  `json:"name"`
		Alt  string  `json:"alt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = ImageRef{ID: int(raw.ID), Src: raw.Src, Name: raw.Name, Alt: raw.Alt}
	return nil
}

// SEO carries the search metadata flattened into rank_math_* meta entries.
// Description should stay under 160 characters; this is not enforced.
type SEO struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Keywords     Keywords `json:"keywords,omitempty"`
	FocusKeyword string   `json:"focus_keyword,omitempty"`
}

type StockStatus string

const (
	StockStatusInStock     StockStatus = "instock"
	StockStatusOutOfStock  StockStatus = "outofstock"
	StockStatusOnBackorder StockStatus = "onbackorder"
)

type ProductType string

const (
	ProductTypeSimple   ProductType = "simple"
	ProductTypeGrouped  ProductType = "grouped"
	ProductTypeExternal ProductType = "external"
	ProductTypeVariable ProductType = "variable"
)

type ProductStatus string

const (
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusPending ProductStatus = "pending"
	ProductStatusPrivate ProductStatus = "private"
	ProductStatusPublish ProductStatus = "publish"
)

// Validate checks the two required fields.
func (d *ProductDraft) Validate() error {
	if d == nil {
		return apperrors.NewValidationError("Name and regular_price are required fields", "name", "regular_price")
	}

	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.RegularPrice.IsZero() {
		missing = append(missing, "regular_price")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("Name and regular_price are required fields", missing...)
	}
	return nil
}

// IsEligible reports whether the draft can be submitted to the catalog.
func (d *ProductDraft) IsEligible() bool {
	return d.Validate() == nil
}
