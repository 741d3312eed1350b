// =============================================================================
// Sephpa - Shared SEPA Types
// =============================================================================
//
// This package contains the direct-debit data model: the collection-wide
// settings, the per-payment record, and the value types they share. The
// generation logic that turns these into pain.008 subtrees lives in
// collection.go and payment.go.
//
// =============================================================================

package sepa

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// VALUE TYPES
// =============================================================================

// SequenceType identifies the position of a collection in its mandate
// sequence.
type SequenceType string

// The four sequence types permitted in a direct-debit collection.
const (
	SequenceFirst     SequenceType = "FRST"
	SequenceRecurring SequenceType = "RCUR"
	SequenceFinal     SequenceType = "FNAL"
	SequenceOneOff    SequenceType = "OOFF"
)

// Valid reports whether s is one of the four permitted sequence types.
func (s SequenceType) Valid() bool {
	switch s {
	case SequenceFirst, SequenceRecurring, SequenceFinal, SequenceOneOff:
		return true
	}
	return false
}

// Fixed values written into every generated document.
const (
	// DefaultCurrency is used when the settings carry no usable currency.
	DefaultCurrency = "EUR"

	// paymentMethod is the payment method code for direct debits.
	paymentMethod = "DD"

	// chargeBearer is the only charge bearer the scheme permits.
	chargeBearer = "SLEV"

	// schemeProprietary marks creditor-scheme identification blocks.
	schemeProprietary = "SEPA"

	// SameMandateNewDebtorAgent is the sentinel written as the original
	// debtor agent in amendment details. It means "same mandate, new debtor
	// agent" and is only permitted on FRST collections.
	SameMandateNewDebtorAgent = "SMNDA"
)

// =============================================================================
// COLLECTION SETTINGS
// =============================================================================

// CollectionSettings holds the collection-wide attributes shared by every
// payment in a DirectDebitCollection. A settings value is validated once when
// the collection is created and is not modified afterwards.
//
// Optional string fields are absent when empty.
type CollectionSettings struct {
	// PaymentInfoID identifies the collection inside the file.
	PaymentInfoID string

	// LocalInstrument is the scheme variant code (e.g. "CORE", "B2B").
	// It is upper-cased when the collection is created.
	LocalInstrument string

	// SequenceType is the mandate sequence position of this collection.
	SequenceType SequenceType

	// CreditorName is the name of the creditor.
	CreditorName string

	// CreditorIBAN is the creditor account to collect into.
	CreditorIBAN string

	// CreditorBIC identifies the creditor agent.
	CreditorBIC string

	// CreditorID is the SEPA creditor scheme identifier.
	CreditorID string

	// Currency is an optional 3-letter currency code. Anything that is not
	// exactly 3 characters falls back to DefaultCurrency at generation time.
	Currency string

	// BatchBooking is an optional tri-state flag. It is only emitted when it
	// is exactly the literal "true" or "false".
	BatchBooking string

	// CategoryPurpose is an optional category purpose code.
	CategoryPurpose string

	// UltimateCreditor is an optional ultimate creditor name, truncated to
	// 70 characters at emission.
	UltimateCreditor string

	// RequestedCollectionDate is an optional date in YYYY-MM-DD form. When
	// absent, the collection's clock supplies the current date at generation
	// time.
	RequestedCollectionDate string
}

// fieldSet exposes the settings as named fields for the presence checks.
func (s *CollectionSettings) fieldSet() map[string]string {
	return map[string]string{
		"pmtInfId":  s.PaymentInfoID,
		"lclInstrm": s.LocalInstrument,
		"seqTp":     string(s.SequenceType),
		"cdtr":      s.CreditorName,
		"iban":      s.CreditorIBAN,
		"bic":       s.CreditorBIC,
		"ci":        s.CreditorID,
	}
}

// requiredSettingsFields lists the settings fields that must be present.
var requiredSettingsFields = []string{
	"pmtInfId", "lclInstrm", "seqTp", "cdtr", "iban", "bic", "ci",
}

// =============================================================================
// PAYMENT RECORD
// =============================================================================

// Payment is a single direct-debit instruction. Optional string fields are
// absent when empty; absent fields are omitted from the generated document
// rather than emitted empty.
type Payment struct {
	// EndToEndID is the end-to-end payment identification.
	EndToEndID string

	// Amount is the instructed amount. It must be positive and is emitted
	// with exactly two fractional digits.
	Amount decimal.Decimal

	// MandateID identifies the mandate this debit draws on.
	MandateID string

	// DateOfSignature is the mandate signature date in YYYY-MM-DD form.
	DateOfSignature string

	// DebtorBIC identifies the debtor agent.
	DebtorBIC string

	// DebtorName is the debtor's name, truncated to 70 characters at
	// emission.
	DebtorName string

	// DebtorIBAN is the debtor account to collect from.
	DebtorIBAN string

	// AmendmentIndicator flags that this payment amends a previously
	// authorized mandate. When true, at least one of the Original* fields
	// must be set.
	AmendmentIndicator bool

	// Original mandate fields, only meaningful when AmendmentIndicator is
	// true.
	OriginalMandateID    string
	OriginalCreditorName string
	OriginalCreditorID   string
	OriginalDebtorIBAN   string

	// OriginalDebtorAgent marks a debtor agent change. The stored value is
	// informational only: at emission the fixed SameMandateNewDebtorAgent
	// sentinel is written whenever the field is present. Setting it to the
	// sentinel itself requires the collection to be FRST.
	OriginalDebtorAgent string

	// ElectronicSignature is an optional electronic signature reference.
	ElectronicSignature string

	// UltimateDebtor is an optional ultimate debtor name.
	UltimateDebtor string

	// Purpose is an optional purpose code.
	Purpose string

	// RemittanceInfo is optional unstructured remittance text, truncated to
	// 140 characters at emission.
	RemittanceInfo string
}

// fieldSet exposes the payment as named fields for the presence checks. The
// amount is treated as absent unless it is positive.
func (p *Payment) fieldSet() map[string]string {
	amount := ""
	if p.Amount.Sign() > 0 {
		amount = p.Amount.String()
	}
	return map[string]string{
		"pmtId":               p.EndToEndID,
		"instdAmt":            amount,
		"mndtId":              p.MandateID,
		"dtOfSgntr":           p.DateOfSignature,
		"bic":                 p.DebtorBIC,
		"dbtr":                p.DebtorName,
		"iban":                p.DebtorIBAN,
		"orgnlMndtId":         p.OriginalMandateID,
		"orgnlCdtrSchmeId_nm": p.OriginalCreditorName,
		"orgnlCdtrSchmeId_id": p.OriginalCreditorID,
		"orgnlDbtrAcct_iban":  p.OriginalDebtorIBAN,
		"orgnlDbtrAgt":        p.OriginalDebtorAgent,
	}
}

// requiredPaymentFields lists the payment fields that must be present.
var requiredPaymentFields = []string{
	"pmtId", "instdAmt", "mndtId", "dtOfSgntr", "bic", "dbtr", "iban",
}

// originalMandateFields lists the fields of which at least one must be
// present when the amendment indicator is set.
var originalMandateFields = []string{
	"orgnlMndtId", "orgnlCdtrSchmeId_nm", "orgnlCdtrSchmeId_id",
	"orgnlDbtrAcct_iban", "orgnlDbtrAgt",
}
