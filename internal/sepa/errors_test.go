package sepa

import (
	"strings"
	"testing"
)

func TestRequiredErrorNamesAllMissingFields(t *testing.T) {
	err := newRequiredError([]string{"mndtId", "iban"})

	if err.Rule != RuleRequired {
		t.Fatalf("unexpected rule %q", err.Rule)
	}
	if !strings.Contains(err.Error(), "mndtId, iban") {
		t.Fatalf("expected all field names in message, got %q", err.Error())
	}
}

func TestConditionalErrorListsOriginalMandateFields(t *testing.T) {
	err := newConditionalError()

	if err.Rule != RuleConditionalRequired {
		t.Fatalf("unexpected rule %q", err.Rule)
	}
	for _, field := range originalMandateFields {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %q in message, got %q", field, err.Error())
		}
	}
}

func TestSequenceTypeErrorCarriesMessage(t *testing.T) {
	err := newSequenceTypeError("unknown sequence type: WEEKLY")

	if err.Rule != RuleSequenceType {
		t.Fatalf("unexpected rule %q", err.Rule)
	}
	if err.Error() != "unknown sequence type: WEEKLY" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
