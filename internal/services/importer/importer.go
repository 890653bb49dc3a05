// Package importer turns spreadsheet and JSON uploads into product drafts
// for the bulk sequencer.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"productapi/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Columns lists the recognised header names, in template order.
var Columns = []string{
	"name", "regular_price", "sale_price", "sku",
	"description", "short_description",
	"weight", "length", "width", "height",
	"manage_stock", "stock_quantity", "stock_status",
	"type", "status", "categories", "images",
	"seo_title", "seo_description", "seo_keywords", "seo_focus_keyword",
}

// DetectFormat infers the format from a file name.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported file type %q: use .csv, .xlsx or .json", filepath.Ext(filename))
}

// ParseFile reads drafts from r, choosing the parser by file extension.
func ParseFile(filename string, r io.Reader) ([]models.ProductDraft, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	return Parse(format, r)
}

func Parse(format Format, r io.Reader) ([]models.ProductDraft, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(r)
	case FormatCSV:
		rows, err := parseCSV(r)
		if err != nil {
			return nil, err
		}
		return rowsToDrafts(rows), nil
	case FormatXLSX:
		rows, err := parseXLSX(r)
		if err != nil {
			return nil, err
		}
		return rowsToDrafts(rows), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ParseJSON accepts a bare array of drafts, {"products": [...]}, a single
// draft object, or a response envelope whose "data" holds any of those.
func ParseJSON(r io.Reader) ([]models.ProductDraft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	return parseJSONDrafts(bytes.TrimSpace(data))
}

func parseJSONDrafts(data []byte) ([]models.ProductDraft, error) {
	if len(data) > 0 && data[0] == '[' {
		var drafts []models.ProductDraft
		if err := json.Unmarshal(data, &drafts); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return drafts, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if products, ok := fields["products"]; ok {
		var drafts []models.ProductDraft
		if err := json.Unmarshal(products, &drafts); err != nil {
			return nil, fmt.Errorf("failed to parse products: %w", err)
		}
		return drafts, nil
	}

	if _, ok := fields["success"]; ok {
		inner, ok := fields["data"]
		if !ok || bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
			var envelope struct {
				Error string `json:"error"`
			}
			json.Unmarshal(data, &envelope)
			return nil, fmt.Errorf("response envelope carries no drafts: %s", envelope.Error)
		}
		return parseJSONDrafts(bytes.TrimSpace(inner))
	}

	if len(fields) == 0 {
		return nil, nil
	}

	var draft models.ProductDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return []models.ProductDraft{draft}, nil
}

// parseCSV parses a CSV file into rows
func parseCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []map[string]string
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		rows = append(rows, toRow(headers, record))
		lineNum++
	}

	return rows, nil
}

// parseXLSX parses the first sheet (or one named "Products") into rows
func parseXLSX(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Products") {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	rows := make([]map[string]string, 0, len(excelRows)-1)
	for _, excelRow := range excelRows[1:] {
		rows = append(rows, toRow(headers, excelRow))
	}
	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		h := strings.TrimSpace(strings.ToLower(headers[i]))
		h = strings.TrimSuffix(h, " *")
		headers[i] = strings.ReplaceAll(h, " ", "_")
	}
}

func toRow(headers, record []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, value := range record {
		if i < len(headers) {
			row[headers[i]] = strings.TrimSpace(value)
		}
	}
	return row
}

func rowsToDrafts(rows []map[string]string) []models.ProductDraft {
	drafts := make([]models.ProductDraft, 0, len(rows))
	for _, row := range rows {
		drafts = append(drafts, rowToDraft(row))
	}
	return drafts
}

// rowToDraft maps a spreadsheet row onto a draft. Cells that do not parse
// (a non-numeric stock quantity, say) are left unset.
func rowToDraft(row map[string]string) models.ProductDraft {
	price := row["regular_price"]
	if price == "" {
		price = row["price"]
	}

	draft := models.ProductDraft{
		Name:             row["name"],
		RegularPrice:     models.FlexString(price),
		SalePrice:        models.FlexString(row["sale_price"]),
		SKU:              models.FlexString(row["sku"]),
		Description:      row["description"],
		ShortDescription: row["short_description"],
		Weight:           models.FlexString(row["weight"]),
		Length:           models.FlexString(row["length"]),
		Width:            models.FlexString(row["width"]),
		Height:           models.FlexString(row["height"]),
		StockStatus:      models.StockStatus(row["stock_status"]),
		Type:             models.ProductType(row["type"]),
		Status:           models.ProductStatus(row["status"]),
		Categories:       parseCategories(row["categories"]),
		Images:           parseImages(row["images"]),
	}

	if v, err := strconv.ParseBool(row["manage_stock"]); err == nil {
		draft.ManageStock = models.Some(v)
	}
	if v, err := strconv.Atoi(row["stock_quantity"]); err == nil {
		draft.StockQuantity = models.Some(v)
	}

	seo := models.SEO{
		Title:        row["seo_title"],
		Description:  row["seo_description"],
		Keywords:     models.Keywords(row["seo_keywords"]),
		FocusKeyword: row["seo_focus_keyword"],
	}
	if seo != (models.SEO{}) {
		draft.SEO = &seo
	}

	return draft
}

// parseCategories reads "12, 15" or "12:Phones, 15:Cases".
func parseCategories(value string) []models.CategoryRef {
	var refs []models.CategoryRef
	for _, part := range splitList(value) {
		idPart, name, _ := strings.Cut(part, ":")
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil {
			continue
		}
		refs = append(refs, models.CategoryRef{ID: id, Name: strings.TrimSpace(name)})
	}
	return refs
}

func parseImages(value string) []models.ImageRef {
	var refs []models.ImageRef
	for _, src := range splitList(value) {
		refs = append(refs, models.ImageRef{Src: src})
	}
	return refs
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
