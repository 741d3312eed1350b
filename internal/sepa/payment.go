// =============================================================================
// Sephpa - Payment Generation
// =============================================================================
//
// Per-payment emission of the DrctDbtTxInf subtree. The field order is fixed
// by the pain.008 schema:
//
//   PmtId, InstdAmt@Ccy,
//   DrctDbtTx{MndtRltdInf{MndtId, DtOfSgntr, AmdmntInd,
//             [AmdmntInfDtls], [ElctrncSgntr]}},
//   DbtrAgt, Dbtr, DbtrAcct, [UltmtDbtr], [Purp], [RmtInf]
//
// Absent optional fields are omitted entirely, never emitted empty.
// Truncation of over-length names and remittance text happens here, at
// emission time; validation never rejects over-length values.
//
// =============================================================================

package sepa

import (
	"strconv"

	"github.com/firegate666/sephpa/internal/sepautil"
	"github.com/firegate666/sephpa/internal/xmlbuilder"
)

// generate emits the payment as a DrctDbtTxInf subtree. ccy is the currency
// resolved at the collection level; every amount-bearing element carries it.
func (p *Payment) generate(tx xmlbuilder.Node, ccy string) {
	tx.AddChild("PmtId").AddChildValue("EndToEndId", p.EndToEndID)

	instdAmt := tx.AddChildValue("InstdAmt", p.Amount.StringFixed(2))
	instdAmt.AddAttribute("Ccy", ccy)

	mndtRltdInf := tx.AddChild("DrctDbtTx").AddChild("MndtRltdInf")
	mndtRltdInf.AddChildValue("MndtId", p.MandateID)
	mndtRltdInf.AddChildValue("DtOfSgntr", p.DateOfSignature)
	mndtRltdInf.AddChildValue("AmdmntInd", strconv.FormatBool(p.AmendmentIndicator))

	if p.AmendmentIndicator {
		p.generateAmendmentDetails(mndtRltdInf)
	}

	if p.ElectronicSignature != "" {
		mndtRltdInf.AddChildValue("ElctrncSgntr", p.ElectronicSignature)
	}

	tx.AddChild("DbtrAgt").AddChild("FinInstnId").AddChildValue("BIC", p.DebtorBIC)
	tx.AddChild("Dbtr").AddChildValue("Nm", sepautil.SanitizeLength(p.DebtorName, 70))
	tx.AddChild("DbtrAcct").AddChild("Id").AddChildValue("IBAN", p.DebtorIBAN)

	if p.UltimateDebtor != "" {
		tx.AddChild("UltmtDbtr").AddChildValue("Nm", p.UltimateDebtor)
	}
	if p.Purpose != "" {
		tx.AddChild("Purp").AddChildValue("Cd", p.Purpose)
	}
	if p.RemittanceInfo != "" {
		tx.AddChild("RmtInf").AddChildValue("Ustrd",
			sepautil.SanitizeLength(p.RemittanceInfo, 140))
	}
}

// generateAmendmentDetails emits the AmdmntInfDtls block. Each original
// mandate field is optional; the block itself is only reached when the
// amendment indicator is true, which validation guarantees implies at least
// one field is present.
func (p *Payment) generateAmendmentDetails(mndtRltdInf xmlbuilder.Node) {
	dtls := mndtRltdInf.AddChild("AmdmntInfDtls")

	if p.OriginalMandateID != "" {
		dtls.AddChildValue("OrgnlMndtId", p.OriginalMandateID)
	}

	if p.OriginalCreditorName != "" || p.OriginalCreditorID != "" {
		schmeID := dtls.AddChild("OrgnlCdtrSchmeId")
		if p.OriginalCreditorName != "" {
			schmeID.AddChildValue("Nm", sepautil.SanitizeLength(p.OriginalCreditorName, 70))
		}
		if p.OriginalCreditorID != "" {
			othr := schmeID.AddChild("Id").AddChild("PrvtId").AddChild("Othr")
			othr.AddChildValue("Id", p.OriginalCreditorID)
			othr.AddChild("SchmeNm").AddChildValue("Prtry", schemeProprietary)
		}
	}

	if p.OriginalDebtorIBAN != "" {
		dtls.AddChild("OrgnlDbtrAcct").AddChild("Id").AddChildValue("IBAN", p.OriginalDebtorIBAN)
	}

	if p.OriginalDebtorAgent != "" {
		// The stored value is informational only; the scheme expects the
		// fixed SMNDA marker structure here.
		dtls.AddChild("OrgnlDbtrAgt").AddChild("FinInstnId").AddChild("Othr").
			AddChildValue("Id", SameMandateNewDebtorAgent)
	}
}
