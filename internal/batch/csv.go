// =============================================================================
// Sephpa - Batch Input: CSV Parser
// =============================================================================
//
// Reads a payment batch from a CSV file. The first row is the header row;
// data rows follow immediately. The delimiter is configurable because legacy
// exports frequently use semicolons or pipes.
//
// =============================================================================

package batch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// CSVSettings contains settings for parsing a CSV batch file.
type CSVSettings struct {
	// Delimiter is the field separator. Accepts a literal character or one
	// of the aliases "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// ParseCSV reads a CSV batch file and returns its rows keyed by normalized
// header names.
func ParseCSV(filePath string, settings CSVSettings) (*Batch, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, settings)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("batch file is empty")
	}

	headers := make([]string, len(allRows[0]))
	for i, header := range allRows[0] {
		headers[i] = normalizeHeader(header)
	}

	batch := &Batch{SourceFile: filePath}

	for i, record := range allRows[1:] {
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
			Line:   i + 2, // 1-based, after the header row
		})
	}

	return batch, nil
}

// configureReader applies the delimiter settings to the CSV reader.
func configureReader(reader *csv.Reader, settings CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Legacy exports are sloppy about quoting and column counts.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// isEmptyRecord reports whether every cell in the record is blank.
func isEmptyRecord(record []string) bool {
	for _, value := range record {
		if value != "" {
			return false
		}
	}
	return true
}
