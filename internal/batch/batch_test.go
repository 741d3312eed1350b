package batch

import (
	"os"
	"path/filepath"
	"testing"
)

// writeBatchFile writes content to a temp file and returns its path.
func writeBatchFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseCSVReadsRowsWithNormalizedHeaders(t *testing.T) {
	content := "End To End ID,Amount,Mandate ID,mandate-date,debtor_bic,Debtor Name,DEBTOR IBAN\n" +
		"E2E-1,42.00,MNDT-1,2024-03-01,BELADEBEXXX,Max Mustermann,DE89370400440532013000\n" +
		"\n" +
		"E2E-2,10.50,MNDT-2,2024-04-01,BELADEBEXXX,Erika Musterfrau,DE21700519950000007229\n"

	path := writeBatchFile(t, "batch.csv", content)

	batch, err := ParseCSV(path, CSVSettings{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(batch.Rows) != 2 {
		t.Fatalf("expected 2 rows (blank line skipped), got %d", len(batch.Rows))
	}

	first := batch.Rows[0]
	if first.Line != 2 {
		t.Fatalf("expected first data row on line 2, got %d", first.Line)
	}
	if got := first.Fields["end_to_end_id"]; got != "E2E-1" {
		t.Fatalf("header normalization failed, got end_to_end_id=%q", got)
	}
	if got := first.Fields["mandate_date"]; got != "2024-03-01" {
		t.Fatalf("dashed header not normalized, got mandate_date=%q", got)
	}
	if got := first.Fields["debtor_iban"]; got != "DE89370400440532013000" {
		t.Fatalf("upper-case header not normalized, got debtor_iban=%q", got)
	}
}

func TestParseCSVDelimiterAliases(t *testing.T) {
	content := "end_to_end_id;amount\nE2E-1;42.00\n"
	path := writeBatchFile(t, "batch.csv", content)

	batch, err := ParseCSV(path, CSVSettings{Delimiter: "semicolon"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(batch.Rows) != 1 || batch.Rows[0].Fields["amount"] != "42.00" {
		t.Fatalf("semicolon alias not applied, rows: %+v", batch.Rows)
	}
}

func TestParseCSVRejectsEmptyFile(t *testing.T) {
	path := writeBatchFile(t, "empty.csv", "")
	if _, err := ParseCSV(path, CSVSettings{}); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestParseCSVMissingFile(t *testing.T) {
	if _, err := ParseCSV(filepath.Join(t.TempDir(), "nope.csv"), CSVSettings{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRowPaymentMapsAllColumns(t *testing.T) {
	row := Row{
		Line: 3,
		Fields: map[string]string{
			"end_to_end_id":          "E2E-1",
			"amount":                 "42.00",
			"mandate_id":             "MNDT-1",
			"mandate_date":           "2024-03-01",
			"debtor_bic":             "BELADEBEXXX",
			"debtor_name":            "  Max Mustermann  ",
			"debtor_iban":            "DE89370400440532013000",
			"amendment":              "yes",
			"original_mandate_id":    "MNDT-0",
			"ultimate_debtor":        "Holding GmbH",
			"purpose":                "OTHR",
			"remittance":             "Invoice 4711",
			"electronic_signature":   "SIG-1",
			"original_creditor_name": "Old Corp",
		},
	}

	payment, err := row.Payment()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if payment.EndToEndID != "E2E-1" {
		t.Fatalf("unexpected end-to-end id %q", payment.EndToEndID)
	}
	if payment.Amount.StringFixed(2) != "42.00" {
		t.Fatalf("unexpected amount %s", payment.Amount)
	}
	if payment.DebtorName != "Max Mustermann" {
		t.Fatalf("cell values must be trimmed, got %q", payment.DebtorName)
	}
	if !payment.AmendmentIndicator {
		t.Fatal("expected amendment indicator true for \"yes\"")
	}
	if payment.OriginalMandateID != "MNDT-0" || payment.OriginalCreditorName != "Old Corp" {
		t.Fatal("original mandate columns not mapped")
	}
	if payment.UltimateDebtor != "Holding GmbH" || payment.Purpose != "OTHR" {
		t.Fatal("optional columns not mapped")
	}
	if payment.RemittanceInfo != "Invoice 4711" || payment.ElectronicSignature != "SIG-1" {
		t.Fatal("remittance or signature column not mapped")
	}
}

func TestRowPaymentRejectsUnparseableAmount(t *testing.T) {
	row := Row{Line: 5, Fields: map[string]string{"amount": "forty-two"}}

	if _, err := row.Payment(); err == nil {
		t.Fatal("expected an error for a non-numeric amount")
	}
}

func TestNormalizeAmount(t *testing.T) {
	cases := map[string]string{
		"42.00":     "42.00",
		"1.234,56":  "1234.56",
		"1,234.56":  "1234.56",
		"1234,56":   "1234.56",
		" 10.10 ":   "10.10",
		"1,234,567": "1234567",
	}
	for raw, want := range cases {
		if got := normalizeAmount(raw); got != want {
			t.Fatalf("normalizeAmount(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, value := range []string{"true", "TRUE", "yes", "Y", "1", "t", " yes "} {
		if !parseBool(value) {
			t.Fatalf("expected %q to parse as true", value)
		}
	}
	for _, value := range []string{"", "false", "no", "0", "maybe"} {
		if parseBool(value) {
			t.Fatalf("expected %q to parse as false", value)
		}
	}
}

func TestBatchPaymentsCollectsRowErrors(t *testing.T) {
	batch := &Batch{
		Rows: []Row{
			{Line: 2, Fields: map[string]string{"end_to_end_id": "E2E-1", "amount": "42.00"}},
			{Line: 3, Fields: map[string]string{"end_to_end_id": "E2E-2", "amount": "bad"}},
			{Line: 4, Fields: map[string]string{"end_to_end_id": "E2E-3", "amount": "10.00"}},
		},
	}

	payments, errs := batch.Payments()
	if len(payments) != 2 {
		t.Fatalf("expected 2 convertible payments, got %d", len(payments))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 row error, got %v", errs)
	}
}

func TestParseDispatchesOnExtension(t *testing.T) {
	content := "end_to_end_id,amount\nE2E-1,42.00\n"
	path := writeBatchFile(t, "batch.CSV", content)

	batch, err := Parse(path, CSVSettings{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(batch.Rows))
	}
}
