package woocommerce

import "productapi/internal/models"

// SEO meta keys understood by the Rank Math plugin, in emission order.
const (
	MetaKeySEOTitle        = "rank_math_title"
	MetaKeySEODescription  = "rank_math_description"
	MetaKeySEOFocusKeyword = "rank_math_focus_keyword"
	MetaKeySEOKeywords     = "rank_math_keywords"
)

// ProductPayload is the body accepted by POST /products. Optional fields are
// pointers or omitempty values so an absent draft field never reaches the wire.
type ProductPayload struct {
	Name             string               `json:"name"`
	Type             string               `json:"type"`
	RegularPrice     string               `json:"regular_price"`
	Status           string               `json:"status"`
	SalePrice        string               `json:"sale_price,omitempty"`
	SKU              string               `json:"sku,omitempty"`
	Description      string               `json:"description,omitempty"`
	ShortDescription string               `json:"short_description,omitempty"`
	Weight           string               `json:"weight,omitempty"`
	Dimensions       *Dimensions          `json:"dimensions,omitempty"`
	ManageStock      *bool                `json:"manage_stock,omitempty"`
	StockQuantity    *int                 `json:"stock_quantity,omitempty"`
	StockStatus      string               `json:"stock_status,omitempty"`
	Categories       []models.CategoryRef `json:"categories,omitempty"`
	Images           []models.ImageRef    `json:"images,omitempty"`
	MetaData         []MetaData           `json:"meta_data,omitempty"`
}

type Dimensions struct {
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

type MetaData struct {
	ID    int         `json:"id,omitempty"`
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Product is a product record as returned by the catalog.
type Product struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	Slug             string               `json:"slug"`
	Permalink        string               `json:"permalink"`
	Type             string               `json:"type"`
	Status           string               `json:"status"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"short_description"`
	SKU              string               `json:"sku"`
	Price            string               `json:"price"`
	RegularPrice     string               `json:"regular_price"`
	SalePrice        string               `json:"sale_price"`
	ManageStock      bool                 `json:"manage_stock"`
	StockQuantity    *int                 `json:"stock_quantity"`
	StockStatus      string               `json:"stock_status"`
	Weight           string               `json:"weight"`
	Dimensions       Dimensions           `json:"dimensions"`
	Categories       []models.CategoryRef `json:"categories"`
	Images           []Image              `json:"images"`
	MetaData         []MetaData           `json:"meta_data"`
	DateCreated      string               `json:"date_created"`
	DateModified     string               `json:"date_modified"`
}

type Image struct {
	ID   int    `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
}

// Category is a product category record as returned by the catalog.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Parent      int    `json:"parent"`
	Description string `json:"description"`
	Display     string `json:"display,omitempty"`
	Image       *Image `json:"image,omitempty"`
	MenuOrder   int    `json:"menu_order"`
	Count       int    `json:"count"`
}

// CreateCategoryRequest is the body accepted by POST /products/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Parent      int    `json:"parent,omitempty"`
}

// CategoryListOptions controls GET /products/categories. Zero values are
// left out of the query string.
type CategoryListOptions struct {
	PerPage int
	OrderBy string
	Order   string
}

// DefaultCategoryListOptions mirrors what the product form asks for.
func DefaultCategoryListOptions() CategoryListOptions {
	return CategoryListOptions{PerPage: 100, OrderBy: "name", Order: "asc"}
}

// errorBody is the error document WordPress REST endpoints return.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
