// =============================================================================
// Sephpa - Batch Input: XLSX Parser
// =============================================================================
//
// Reads a payment batch from the first sheet of an XLSX workbook. Row 1 is
// the header row; data rows follow. Cells are read as formatted strings, so
// amounts keep whatever decimal formatting the spreadsheet shows.
//
// =============================================================================

package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads an XLSX batch file and returns its rows keyed by
// normalized header names.
func ParseXLSX(filePath string) (*Batch, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("batch file is empty")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = normalizeHeader(header)
	}

	batch := &Batch{SourceFile: filePath}

	for i, record := range rows[1:] {
		if isEmptyRecord(record) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for j, value := range record {
			if j < len(headers) && headers[j] != "" {
				fields[headers[j]] = value
			}
		}

		batch.Rows = append(batch.Rows, Row{
			Fields: fields,
			Line:   i + 2,
		})
	}

	return batch, nil
}

// Parse dispatches on the file extension: ".xlsx" goes to ParseXLSX,
// everything else is treated as CSV.
func Parse(filePath string, settings CSVSettings) (*Batch, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		return ParseXLSX(filePath)
	}
	return ParseCSV(filePath, settings)
}
