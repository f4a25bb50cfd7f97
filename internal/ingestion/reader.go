// Package ingestion turns order files into ordered RawLine sequences. A file
// either parses completely or fails as a whole: missing required columns,
// empty required cells and unparsable numeric fields abort the batch before
// anything downstream runs.
package ingestion

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ordersvc/internal/domain"
	"ordersvc/internal/port"
)

const (
	colOrderID     = "order_id"
	colProduct     = "product"
	colCategory    = "category"
	colQuantity    = "quantity"
	colUnitPrice   = "unit_price"
	colOrigin      = "origin"
	colDestination = "destination"
)

var requiredColumns = []string{
	colOrderID, colProduct, colCategory,
	colQuantity, colUnitPrice, colOrigin, colDestination,
}

// ForPath picks a reader for the file extension. Supported: .xlsx, .csv.
func ForPath(path string) (port.RowSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return NewXLSXReader(), nil
	case ".csv":
		return NewCSVReader(), nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

// columnIndex maps required column names to their position in the header
// row. Header names are matched case-insensitively and trimmed.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &domain.StructuralError{Missing: missing}
	}
	return idx, nil
}

// parseRow builds one RawLine from a record. rowNum is the 1-based row
// number in the source file, used in validation errors.
func parseRow(rowNum int, record []string, idx map[string]int) (domain.RawLine, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for _, col := range []string{colOrderID, colProduct, colCategory, colOrigin, colDestination} {
		if cell(col) == "" {
			return domain.RawLine{}, &domain.ValidationError{Row: rowNum, Field: col, Value: ""}
		}
	}

	qtyStr := cell(colQuantity)
	qty, err := strconv.ParseInt(qtyStr, 10, 64)
	if err != nil || qty < 0 {
		return domain.RawLine{}, &domain.ValidationError{Row: rowNum, Field: colQuantity, Value: qtyStr}
	}

	priceStr := cell(colUnitPrice)
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return domain.RawLine{}, &domain.ValidationError{Row: rowNum, Field: colUnitPrice, Value: priceStr}
	}

	return domain.RawLine{
		OrderID:     cell(colOrderID),
		Product:     cell(colProduct),
		Category:    cell(colCategory),
		Quantity:    qty,
		UnitPrice:   price,
		Origin:      cell(colOrigin),
		Destination: cell(colDestination),
	}, nil
}

// blankRow reports whether every required cell of a record is empty. Blank
// trailing rows are common in hand-edited spreadsheets and are skipped.
func blankRow(record []string, idx map[string]int) bool {
	for _, col := range requiredColumns {
		i := idx[col]
		if i < len(record) && strings.TrimSpace(record[i]) != "" {
			return false
		}
	}
	return true
}
