package sepautil

import (
	"strings"
	"testing"
)

func TestMissingFieldsPreservesRequiredOrder(t *testing.T) {
	fields := map[string]string{
		"pmtInfId": "PII-1",
		"cdtr":     "   ",
		"iban":     "",
	}
	required := []string{"pmtInfId", "cdtr", "iban", "bic"}

	missing := MissingFields(fields, required)
	want := []string{"cdtr", "iban", "bic"}
	if len(missing) != len(want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, missing)
		}
	}
}

func TestMissingFieldsEmptyWhenAllPresent(t *testing.T) {
	fields := map[string]string{"a": "1", "b": "2"}
	if missing := MissingFields(fields, []string{"a", "b"}); len(missing) != 0 {
		t.Fatalf("expected no missing fields, got %v", missing)
	}
}

func TestContainsAny(t *testing.T) {
	fields := map[string]string{
		"orgnlMndtId":  "",
		"orgnlDbtrAgt": "SMNDA",
	}

	if !ContainsAny(fields, []string{"orgnlMndtId", "orgnlDbtrAgt"}) {
		t.Fatal("expected true when one key is set")
	}
	if ContainsAny(fields, []string{"orgnlMndtId", "absent"}) {
		t.Fatal("expected false when no key is set")
	}
	if ContainsAny(map[string]string{"x": "  "}, []string{"x"}) {
		t.Fatal("whitespace-only values must not count as present")
	}
}

func TestSanitizeLength(t *testing.T) {
	if got := SanitizeLength("short", 70); got != "short" {
		t.Fatalf("expected unchanged value, got %s", got)
	}

	long := strings.Repeat("x", 80)
	if got := SanitizeLength(long, 70); len(got) != 70 {
		t.Fatalf("expected 70 characters, got %d", len(got))
	}

	// Truncation counts runes, not bytes.
	umlauts := strings.Repeat("ü", 10)
	if got := SanitizeLength(umlauts, 4); got != "üüüü" {
		t.Fatalf("expected 4 runes, got %q", got)
	}

	if got := SanitizeLength("abc", -1); got != "abc" {
		t.Fatalf("expected negative limit to disable truncation, got %s", got)
	}
}

func TestIsValidIBAN(t *testing.T) {
	valid := []string{
		"DE21700519950000007229",
		"DE89370400440532013000",
		"FR1420041010050500013M02606",
		"de21 7005 1995 0000 0072 29", // lower case and spaces tolerated
	}
	for _, iban := range valid {
		if !IsValidIBAN(iban) {
			t.Fatalf("expected %s to be valid", iban)
		}
	}

	invalid := []string{
		"",
		"DE21700519950000007228", // checksum off by one
		"DE217005",               // too short
		"XX00INVALID",
		"1221700519950000007229", // digits where the country code belongs
	}
	for _, iban := range invalid {
		if IsValidIBAN(iban) {
			t.Fatalf("expected %s to be invalid", iban)
		}
	}
}

func TestIsValidBIC(t *testing.T) {
	valid := []string{
		"BELADEBEXXX",
		"SPUEDE2UXXX",
		"MARKDEFF",
		"markdeff", // case ignored
	}
	for _, bic := range valid {
		if !IsValidBIC(bic) {
			t.Fatalf("expected %s to be valid", bic)
		}
	}

	invalid := []string{
		"",
		"BELADEBEXX",   // 10 characters
		"12LADEBEXXX",  // digits where letters belong
		"BELADE0EXXX",  // 0 not permitted in position 7
		"BELADEBOXXX",  // O not permitted in position 8
	}
	for _, bic := range invalid {
		if IsValidBIC(bic) {
			t.Fatalf("expected %s to be invalid", bic)
		}
	}
}

func TestIsValidCreditorID(t *testing.T) {
	valid := []string{
		"DE98ZZZ09999999999",
		"FR72ZZZ123456",
		"de98zzz09999999999", // case ignored
	}
	for _, ci := range valid {
		if !IsValidCreditorID(ci) {
			t.Fatalf("expected %s to be valid", ci)
		}
	}

	invalid := []string{
		"",
		"D98ZZZ09999999999", // one-letter country code
		"DEXXZZZ0999999",    // letters where the check digits belong
	}
	for _, ci := range invalid {
		if IsValidCreditorID(ci) {
			t.Fatalf("expected %s to be invalid", ci)
		}
	}
}
