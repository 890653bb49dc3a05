package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_QuotedScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		quantity Optional[int]
		manage   Optional[bool]
	}{
		{"numbers", `{"stock_quantity": 100, "manage_stock": true}`, Some(100), Some(true)},
		{"quoted", `{"stock_quantity": "100", "manage_stock": "true"}`, Some(100), Some(true)},
		{"quoted zero stays set", `{"stock_quantity": "0", "manage_stock": "false"}`, Some(0), Some(false)},
		{"empty string is unset", `{"stock_quantity": "", "manage_stock": ""}`, Optional[int]{}, Optional[bool]{}},
		{"null is unset", `{"stock_quantity": null}`, Optional[int]{}, Optional[bool]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var draft ProductDraft
			require.NoError(t, json.Unmarshal([]byte(tt.input), &draft))
			assert.Equal(t, tt.quantity, draft.StockQuantity)
			assert.Equal(t, tt.manage, draft.ManageStock)
		})
	}
}

func TestOptional_RejectsNonNumericQuantity(t *testing.T) {
	var draft ProductDraft
	assert.Error(t, json.Unmarshal([]byte(`{"stock_quantity": "lots"}`), &draft))
}

func TestCategoryRef_QuotedID(t *testing.T) {
	var draft ProductDraft
	require.NoError(t, json.Unmarshal([]byte(`{
		"categories": [{"id": "3", "name": "Books"}, {"id": 4}, {"id": 5.0}],
		"images": [{"id": "12", "src": "https://cdn.example/mug.jpg"}]
	}`), &draft))

	assert.Equal(t, []CategoryRef{{ID: 3, Name: "Books"}, {ID: 4}, {ID: 5}}, draft.Categories)
	assert.Equal(t, []ImageRef{{ID: 12, Src: "https://cdn.example/mug.jpg"}}, draft.Images)
}

func TestCategoryRef_RejectsFractionalID(t *testing.T) {
	var ref CategoryRef
	assert.Error(t, json.Unmarshal([]byte(`{"id": "3.5"}`), &ref))
}

func TestFlexString_KeepsNumberLiteral(t *testing.T) {
	var draft ProductDraft
	require.NoError(t, json.Unmarshal([]byte(`{"regular_price": 9.50, "sale_price": 0}`), &draft))

	assert.Equal(t, FlexString("9.50"), draft.RegularPrice)
	assert.True(t, draft.SalePrice.IsZero())
}
