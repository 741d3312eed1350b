package batch

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an XLSX file with the given rows on the first sheet.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestParseXLSXReadsFirstSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"End To End ID", "Amount", "Mandate ID", "Debtor IBAN"},
		{"E2E-1", "42.00", "MNDT-1", "DE89370400440532013000"},
		{"", "", "", ""},
		{"E2E-2", "10.50", "MNDT-2", "DE21700519950000007229"},
	})

	batch, err := ParseXLSX(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(batch.Rows) != 2 {
		t.Fatalf("expected 2 rows (blank row skipped), got %d", len(batch.Rows))
	}

	first := batch.Rows[0]
	if first.Line != 2 {
		t.Fatalf("expected first data row on line 2, got %d", first.Line)
	}
	if got := first.Fields["end_to_end_id"]; got != "E2E-1" {
		t.Fatalf("header normalization failed, got end_to_end_id=%q", got)
	}
	if got := first.Fields["amount"]; got != "42.00" {
		t.Fatalf("unexpected amount cell %q", got)
	}

	if got := batch.Rows[1].Line; got != 4 {
		t.Fatalf("expected second data row on line 4, got %d", got)
	}
}

func TestParseXLSXMissingFile(t *testing.T) {
	if _, err := ParseXLSX(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseDispatchesXLSXExtension(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"end_to_end_id", "amount"},
		{"E2E-1", "42.00"},
	})

	batch, err := Parse(path, CSVSettings{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(batch.Rows))
	}
}
