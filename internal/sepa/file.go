// =============================================================================
// Sephpa - Direct Debit File Envelope
// =============================================================================
//
// A DirectDebitFile is the outer pain.008.002.02 document: the Document root
// with its namespace, the group header with file-wide aggregates, and one
// PmtInf per collection. The collection core never depends on the envelope;
// the envelope drives it through the same builder interface as any other
// caller would.
//
// =============================================================================

package sepa

import (
	"strconv"
	"time"

	"github.com/firegate666/sephpa/internal/sepautil"
	"github.com/firegate666/sephpa/internal/xmlbuilder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Namespace constants for the generated document.
const (
	painNamespace      = "urn:iso:std:iso:20022:tech:xsd:pain.008.002.02"
	xsiNamespace       = "http://www.w3.org/2001/XMLSchema-instance"
	painSchemaLocation = painNamespace + " pain.008.002.02.xsd"
)

// DirectDebitFile is a complete direct-debit initiation document holding one
// or more collections.
type DirectDebitFile struct {
	// MessageID identifies the file. A random UUID is assigned when the
	// caller supplies none.
	MessageID string

	// InitiatingParty is the name of the party submitting the file,
	// truncated to 70 characters at emission.
	InitiatingParty string

	// collections in insertion order.
	collections []*DirectDebitCollection

	// now supplies the creation timestamp and is handed down to every
	// collection added to the file.
	now func() time.Time
}

// NewDirectDebitFile creates an empty file envelope. When messageID is empty
// a random UUID is used.
func NewDirectDebitFile(messageID, initiatingParty string) *DirectDebitFile {
	if messageID == "" {
		messageID = uuid.NewString()
	}
	return &DirectDebitFile{
		MessageID:       messageID,
		InitiatingParty: initiatingParty,
		now:             time.Now,
	}
}

// SetClock replaces the time source for the file and all collections it
// currently holds. Collections added afterwards inherit the same clock.
func (f *DirectDebitFile) SetClock(now func() time.Time) {
	f.now = now
	for _, c := range f.collections {
		c.SetClock(now)
	}
}

// AddCollection validates the settings, creates a collection, and appends it
// to the file. The collection inherits the file's clock.
func (f *DirectDebitFile) AddCollection(settings CollectionSettings) (*DirectDebitCollection, error) {
	collection, err := NewDirectDebitCollection(settings)
	if err != nil {
		return nil, err
	}
	collection.SetClock(f.now)
	f.collections = append(f.collections, collection)
	return collection, nil
}

// TransactionCount returns the number of payments across all collections.
func (f *DirectDebitFile) TransactionCount() int {
	count := 0
	for _, c := range f.collections {
		count += c.PaymentCount()
	}
	return count
}

// ControlSum returns the exact decimal sum of all payments across all
// collections.
func (f *DirectDebitFile) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range f.collections {
		sum = sum.Add(c.TotalAmount())
	}
	return sum
}

// Generate renders the complete document and returns it as XML bytes.
func (f *DirectDebitFile) Generate() []byte {
	return xmlbuilder.Serialize(f.BuildTree())
}

// BuildTree constructs the document element tree without serializing it.
func (f *DirectDebitFile) BuildTree() *xmlbuilder.Element {
	root := xmlbuilder.NewElement("Document")
	root.AddAttribute("xmlns", painNamespace)
	root.AddAttribute("xmlns:xsi", xsiNamespace)
	root.AddAttribute("xsi:schemaLocation", painSchemaLocation)

	initn := root.AddChild("CstmrDrctDbtInitn")

	grpHdr := initn.AddChild("GrpHdr")
	grpHdr.AddChildValue("MsgId", f.MessageID)
	grpHdr.AddChildValue("CreDtTm", f.now().Format("2006-01-02T15:04:05"))
	grpHdr.AddChildValue("NbOfTxs", strconv.Itoa(f.TransactionCount()))
	grpHdr.AddChildValue("CtrlSum", f.ControlSum().StringFixed(2))
	grpHdr.AddChild("InitgPty").AddChildValue("Nm",
		sepautil.SanitizeLength(f.InitiatingParty, 70))

	for _, c := range f.collections {
		c.Generate(initn.AddChild("PmtInf"))
	}

	return root
}
