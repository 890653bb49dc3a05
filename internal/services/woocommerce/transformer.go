package woocommerce

import (
	"productapi/internal/models"
)

// Normalize converts a draft into the payload accepted by the catalog API.
//
// Only type and status receive defaults; every other field is copied only
// when the draft provides it. The draft itself is never modified.
func Normalize(draft *models.ProductDraft) (*ProductPayload, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	payload := &ProductPayload{
		Name:             draft.Name,
		Type:             string(models.ProductTypeSimple),
		RegularPrice:     draft.RegularPrice.String(),
		Status:           string(models.ProductStatusPublish),
		SalePrice:        draft.SalePrice.String(),
		SKU:              draft.SKU.String(),
		Description:      draft.Description,
		ShortDescription: draft.ShortDescription,
		Weight:           draft.Weight.String(),
		StockStatus:      string(draft.StockStatus),
		Dimensions:       normalizeDimensions(draft),
		MetaData:         normalizeSEO(draft.SEO),
	}

	if draft.Type != "" {
		payload.Type = string(draft.Type)
	}
	if draft.Status != "" {
		payload.Status = string(draft.Status)
	}

	if manage, ok := draft.ManageStock.Get(); ok {
		payload.ManageStock = &manage
		if qty, ok := draft.StockQuantity.Get(); ok && manage {
			payload.StockQuantity = &qty
		}
	}

	if len(draft.Categories) > 0 {
		payload.Categories = append([]models.CategoryRef(nil), draft.Categories...)
	}
	if len(draft.Images) > 0 {
		payload.Images = append([]models.ImageRef(nil), draft.Images...)
	}

	return payload, nil
}

func normalizeDimensions(draft *models.ProductDraft) *Dimensions {
	if draft.Length.IsZero() && draft.Width.IsZero() && draft.Height.IsZero() {
		return nil
	}
	return &Dimensions{
		Length: draft.Length.String(),
		Width:  draft.Width.String(),
		Height: draft.Height.String(),
	}
}

// normalizeSEO flattens SEO fields into meta entries in a fixed order:
// title, description, focus keyword, keywords.
func normalizeSEO(seo *models.SEO) []MetaData {
	if seo == nil {
		return nil
	}

	fields := []struct {
		key   string
		value string
	}{
		{MetaKeySEOTitle, seo.Title},
		{MetaKeySEODescription, seo.Description},
		{MetaKeySEOFocusKeyword, seo.FocusKeyword},
		{MetaKeySEOKeywords, string(seo.Keywords)},
	}

	var meta []MetaData
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		meta = append(meta, MetaData{Key: f.key, Value: f.value})
	}
	return meta
}
