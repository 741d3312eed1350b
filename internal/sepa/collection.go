// =============================================================================
// Sephpa - Direct Debit Collection
// =============================================================================
//
// A DirectDebitCollection owns one immutable CollectionSettings value and an
// ordered, append-only list of payments. Payments are validated when they are
// added; generation is a stateless render pass that emits the PmtInf subtree
// followed by one DrctDbtTxInf subtree per payment, in insertion order.
//
// ELEMENT ORDER (PmtInf):
//   PmtInfId, PmtMtd, [BtchBookg], NbOfTxs, CtrlSum,
//   PmtTpInf{SvcLvl, LclInstrm, SeqTp, [CtgyPurp]},
//   ReqdColltnDt, Cdtr, CdtrAcct{IBAN, Ccy}, CdtrAgt,
//   [UltmtCdtr], ChrgBr, CdtrSchmeId, DrctDbtTxInf*
//
// The element order is fixed by the pain.008 schema and must not change.
//
// CONCURRENCY:
//   A collection is built and rendered within one unit of work. There is no
//   internal locking; callers that share a collection across goroutines must
//   serialize all AddPayment calls and the Generate call themselves.
//
// =============================================================================

package sepa

import (
	"strconv"
	"strings"
	"time"

	"github.com/firegate666/sephpa/internal/sepautil"
	"github.com/firegate666/sephpa/internal/xmlbuilder"
	"github.com/shopspring/decimal"
)

// =============================================================================
// COLLECTION STRUCTURE
// =============================================================================

// DirectDebitCollection is a batch of direct-debit payments sharing one set
// of collection settings.
type DirectDebitCollection struct {
	// settings are the collection-wide attributes, frozen at construction.
	settings CollectionSettings

	// payments are the validated payments in insertion order. Insertion
	// order is emission order.
	payments []Payment

	// now supplies the current time for the requested-collection-date
	// fallback. Replaceable via SetClock for deterministic output.
	now func() time.Time
}

// NewDirectDebitCollection validates the settings and creates an empty
// collection. All missing required fields are reported together; an unknown
// sequence type is rejected. The local instrument code is upper-cased.
func NewDirectDebitCollection(settings CollectionSettings) (*DirectDebitCollection, error) {
	if missing := sepautil.MissingFields(settings.fieldSet(), requiredSettingsFields); len(missing) > 0 {
		return nil, newRequiredError(missing)
	}

	if !settings.SequenceType.Valid() {
		return nil, newSequenceTypeError("unknown sequence type: " + string(settings.SequenceType))
	}

	settings.LocalInstrument = strings.ToUpper(settings.LocalInstrument)

	return &DirectDebitCollection{
		settings: settings,
		now:      time.Now,
	}, nil
}

// Settings returns a copy of the collection settings.
func (c *DirectDebitCollection) Settings() CollectionSettings {
	return c.settings
}

// SetClock replaces the time source used for the requested-collection-date
// fallback. The fallback makes Generate time-dependent unless the settings
// carry an explicit date; injecting a fixed clock restores determinism.
func (c *DirectDebitCollection) SetClock(now func() time.Time) {
	c.now = now
}

// =============================================================================
// MUTATION AND QUERIES
// =============================================================================

// AddPayment validates the payment and appends it to the collection.
//
// VALIDATION RULES:
//   1. All required fields must be present (every missing name is reported).
//   2. When the amendment indicator is set, at least one original-mandate
//      field must be present.
//   3. The SMNDA sentinel as original debtor agent requires the collection's
//      sequence type to be FRST.
//
// On any violation a *ValidationError is returned and the collection is left
// unchanged; the payment is appended only after full validation passes.
func (c *DirectDebitCollection) AddPayment(payment Payment) error {
	fields := payment.fieldSet()

	if missing := sepautil.MissingFields(fields, requiredPaymentFields); len(missing) > 0 {
		return newRequiredError(missing)
	}

	if payment.AmendmentIndicator {
		if !sepautil.ContainsAny(fields, originalMandateFields) {
			return newConditionalError()
		}

		if payment.OriginalDebtorAgent == SameMandateNewDebtorAgent &&
			c.settings.SequenceType != SequenceFirst {
			return newSequenceTypeError(
				"original debtor agent " + SameMandateNewDebtorAgent +
					" requires sequence type " + string(SequenceFirst) +
					", collection has " + string(c.settings.SequenceType))
		}
	}

	c.payments = append(c.payments, payment)
	return nil
}

// PaymentCount returns the number of payments in the collection.
func (c *DirectDebitCollection) PaymentCount() int {
	return len(c.payments)
}

// TotalAmount returns the control sum of the collection: the exact decimal
// sum of all instructed amounts. Accumulation is fixed-point, so amounts
// like 10.10 + 20.20 + 5.05 sum without binary floating-point drift.
func (c *DirectDebitCollection) TotalAmount() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.payments {
		sum = sum.Add(c.payments[i].Amount)
	}
	return sum
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate emits the collection-level subtree into pmtInf, followed by one
// transaction subtree per payment in insertion order. It does not mutate the
// collection: given an explicit requested collection date, calling it twice
// produces identical trees.
func (c *DirectDebitCollection) Generate(pmtInf xmlbuilder.Node) {
	ccy := c.resolveCurrency()

	reqdColltnDt := c.settings.RequestedCollectionDate
	if reqdColltnDt == "" {
		reqdColltnDt = c.now().Format("2006-01-02")
	}

	pmtInf.AddChildValue("PmtInfId", c.settings.PaymentInfoID)
	pmtInf.AddChildValue("PmtMtd", paymentMethod)
	if bb := c.settings.BatchBooking; bb == "true" || bb == "false" {
		pmtInf.AddChildValue("BtchBookg", bb)
	}
	pmtInf.AddChildValue("NbOfTxs", strconv.Itoa(c.PaymentCount()))
	pmtInf.AddChildValue("CtrlSum", c.TotalAmount().StringFixed(2))

	pmtTpInf := pmtInf.AddChild("PmtTpInf")
	pmtTpInf.AddChild("SvcLvl").AddChildValue("Cd", schemeProprietary)
	pmtTpInf.AddChild("LclInstrm").AddChildValue("Cd", c.settings.LocalInstrument)
	pmtTpInf.AddChildValue("SeqTp", string(c.settings.SequenceType))
	if c.settings.CategoryPurpose != "" {
		pmtTpInf.AddChild("CtgyPurp").AddChildValue("Cd", c.settings.CategoryPurpose)
	}

	pmtInf.AddChildValue("ReqdColltnDt", reqdColltnDt)
	pmtInf.AddChild("Cdtr").AddChildValue("Nm", c.settings.CreditorName)

	cdtrAcct := pmtInf.AddChild("CdtrAcct")
	cdtrAcct.AddChild("Id").AddChildValue("IBAN", c.settings.CreditorIBAN)
	cdtrAcct.AddChildValue("Ccy", ccy)

	pmtInf.AddChild("CdtrAgt").AddChild("FinInstnId").AddChildValue("BIC", c.settings.CreditorBIC)

	if c.settings.UltimateCreditor != "" {
		pmtInf.AddChild("UltmtCdtr").AddChildValue("Nm",
			sepautil.SanitizeLength(c.settings.UltimateCreditor, 70))
	}

	pmtInf.AddChildValue("ChrgBr", chargeBearer)

	othr := pmtInf.AddChild("CdtrSchmeId").AddChild("Id").AddChild("PrvtId").AddChild("Othr")
	othr.AddChildValue("Id", c.settings.CreditorID)
	othr.AddChild("SchmeNm").AddChildValue("Prtry", schemeProprietary)

	for i := range c.payments {
		c.payments[i].generate(pmtInf.AddChild("DrctDbtTxInf"), ccy)
	}
}

// resolveCurrency returns the settings currency if it is exactly 3 characters
// (upper-cased), otherwise the default currency.
func (c *DirectDebitCollection) resolveCurrency() string {
	if len(c.settings.Currency) == 3 {
		return strings.ToUpper(c.settings.Currency)
	}
	return DefaultCurrency
}
