// =============================================================================
// Sephpa - Batch Input Module
// =============================================================================
//
// This module reads per-payment records from tabular batch files. Two input
// formats are supported:
//   - CSV (csv.go), for exports from legacy billing systems
//   - XLSX (xlsx.go), for batches maintained by hand in a spreadsheet
//
// Both formats share the same column vocabulary, mapped here onto the SEPA
// payment record. Column headers are matched case-insensitively and
// underscores/spaces are interchangeable, so "Debtor IBAN", "debtor_iban"
// and "DEBTOR_IBAN" all address the same field.
//
// COLUMNS:
//   end_to_end_id, amount, mandate_id, mandate_date,
//   debtor_bic, debtor_name, debtor_iban,
//   amendment, original_mandate_id, original_creditor_name,
//   original_creditor_id, original_debtor_iban, original_debtor_agent,
//   electronic_signature, ultimate_debtor, purpose, remittance
//
// Only the first seven are required; validation of the record itself is the
// collection's job, not the parser's. The parser only rejects rows whose
// amount cannot be read as a decimal number.
//
// =============================================================================

package batch

import (
	"fmt"
	"strings"

	"github.com/firegate666/sephpa/internal/sepa"
	"github.com/shopspring/decimal"
)

// Row is one record from a batch file, keyed by normalized column name.
type Row struct {
	// Fields maps normalized column names to cell values.
	Fields map[string]string

	// Line is the 1-based line (or spreadsheet row) number in the source
	// file, used in error messages.
	Line int
}

// Batch is a parsed batch file.
type Batch struct {
	// SourceFile is the path to the source file.
	SourceFile string

	// Rows are the data rows in file order.
	Rows []Row
}

// normalizeHeader lower-cases a header and collapses spaces and dashes to
// underscores so the column vocabulary is forgiving about formatting.
func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	header = strings.ReplaceAll(header, " ", "_")
	header = strings.ReplaceAll(header, "-", "_")
	return header
}

// =============================================================================
// ROW TO PAYMENT MAPPING
// =============================================================================

// Payment converts the row into a SEPA payment record. Empty cells map to
// absent fields. The amount must parse as a decimal number; everything else
// is passed through untouched and validated later by the collection.
func (r Row) Payment() (sepa.Payment, error) {
	payment := sepa.Payment{
		EndToEndID:           r.value("end_to_end_id"),
		MandateID:            r.value("mandate_id"),
		DateOfSignature:      r.value("mandate_date"),
		DebtorBIC:            r.value("debtor_bic"),
		DebtorName:           r.value("debtor_name"),
		DebtorIBAN:           r.value("debtor_iban"),
		OriginalMandateID:    r.value("original_mandate_id"),
		OriginalCreditorName: r.value("original_creditor_name"),
		OriginalCreditorID:   r.value("original_creditor_id"),
		OriginalDebtorIBAN:   r.value("original_debtor_iban"),
		OriginalDebtorAgent:  r.value("original_debtor_agent"),
		ElectronicSignature:  r.value("electronic_signature"),
		UltimateDebtor:       r.value("ultimate_debtor"),
		Purpose:              r.value("purpose"),
		RemittanceInfo:       r.value("remittance"),
	}

	if raw := r.value("amount"); raw != "" {
		amount, err := decimal.NewFromString(normalizeAmount(raw))
		if err != nil {
			return sepa.Payment{}, fmt.Errorf("line %d: invalid amount %q: %w", r.Line, raw, err)
		}
		payment.Amount = amount
	}

	payment.AmendmentIndicator = parseBool(r.value("amendment"))

	return payment, nil
}

// value returns the trimmed cell value for a normalized column name.
func (r Row) value(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

// normalizeAmount strips thousands separators and accepts a decimal comma.
// "1.234,56" and "1,234.56" both become "1234.56".
func normalizeAmount(raw string) string {
	raw = strings.TrimSpace(raw)

	lastComma := strings.LastIndex(raw, ",")
	lastDot := strings.LastIndex(raw, ".")

	if lastComma > lastDot && strings.Count(raw, ",") == 1 {
		// A single trailing comma is the decimal separator.
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	} else {
		// Commas are thousands separators.
		raw = strings.ReplaceAll(raw, ",", "")
	}

	return raw
}

// parseBool interprets the usual spreadsheet spellings of a boolean flag.
// Anything unrecognized counts as false.
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "t":
		return true
	}
	return false
}

// Payments converts all rows of the batch. Row conversion errors are
// collected with their line numbers; successfully converted payments are
// still returned so the caller can report everything at once.
func (b *Batch) Payments() ([]sepa.Payment, []error) {
	var payments []sepa.Payment
	var errs []error

	for _, row := range b.Rows {
		payment, err := row.Payment()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		payments = append(payments, payment)
	}

	return payments, errs
}
