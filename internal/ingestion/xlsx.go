package ingestion

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ordersvc/internal/domain"
)

// XLSXReader reads order lines from the first sheet of an .xlsx workbook.
// Row 1 must be the header row.
type XLSXReader struct{}

func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

func (r *XLSXReader) ReadLines(path string) ([]domain.RawLine, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &domain.StructuralError{Missing: requiredColumns}
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var lines []domain.RawLine
	for i := 1; i < len(rows); i++ {
		if blankRow(rows[i], idx) {
			continue
		}
		line, err := parseRow(i+1, rows[i], idx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
