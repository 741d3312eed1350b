// =============================================================================
// Sephpa - SEPA Utilities Module
// =============================================================================
//
// This module provides the low-level field checks and sanitization primitives
// the generators and the configuration loader rely on:
//   - Presence checks for required field sets (reporting all missing names)
//   - At-least-one-of checks for optional field groups
//   - Rune-safe length truncation
//   - Syntactic IBAN, BIC and creditor identifier checks
//
// Truncation is silent and is applied at emission time; the syntactic checks
// never truncate or modify their input.
//
// =============================================================================

package sepautil

import (
	"math/big"
	"regexp"
	"strings"
)

// =============================================================================
// PRESENCE CHECKS
// =============================================================================

// MissingFields returns the keys in required whose value in fields is empty.
// The returned slice preserves the order of the required list, so error
// messages are stable.
func MissingFields(fields map[string]string, required []string) []string {
	var missing []string
	for _, key := range required {
		if strings.TrimSpace(fields[key]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// ContainsAny reports whether at least one of the given keys has a non-empty
// value in fields.
func ContainsAny(fields map[string]string, keys []string) bool {
	for _, key := range keys {
		if strings.TrimSpace(fields[key]) != "" {
			return true
		}
	}
	return false
}

// =============================================================================
// SANITIZATION
// =============================================================================

// SanitizeLength truncates s to at most max runes. Truncation is silent:
// over-length values are never reported as errors, they are shortened at
// emission time.
func SanitizeLength(s string, max int) string {
	if max < 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// =============================================================================
// SYNTACTIC CHECKS
// =============================================================================

var (
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	bicPattern  = regexp.MustCompile(`^[A-Z]{6}[A-Z2-9][A-NP-Z0-9]([A-Z0-9]{3})?$`)
	ciPattern   = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{3}[A-Z0-9]{1,28}$`)
)

// IsValidIBAN reports whether iban is structurally valid and passes the
// ISO 7064 mod-97 checksum. Spaces are tolerated and case is ignored.
func IsValidIBAN(iban string) bool {
	iban = normalize(iban)

	if !ibanPattern.MatchString(iban) {
		return false
	}

	// Move the country code and check digits to the end, then map letters
	// to numbers (A=10 .. Z=35) and check the remainder mod 97.
	rearranged := iban[4:] + iban[:4]

	var numeric strings.Builder
	for _, r := range rearranged {
		if r >= 'A' && r <= 'Z' {
			numeric.WriteString(bigLetterValue(r))
		} else {
			numeric.WriteRune(r)
		}
	}

	value, ok := new(big.Int).SetString(numeric.String(), 10)
	if !ok {
		return false
	}

	return new(big.Int).Mod(value, big.NewInt(97)).Int64() == 1
}

// IsValidBIC reports whether bic is a structurally valid BIC (8 or 11
// characters). Spaces are tolerated and case is ignored.
func IsValidBIC(bic string) bool {
	return bicPattern.MatchString(normalize(bic))
}

// IsValidCreditorID reports whether ci looks like a SEPA creditor identifier.
// Only the overall structure is checked; national formats vary too much for a
// stricter rule.
func IsValidCreditorID(ci string) bool {
	return ciPattern.MatchString(normalize(ci))
}

// normalize strips spaces and upper-cases the input.
func normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

// bigLetterValue returns the two-digit numeric string for a letter (A=10).
func bigLetterValue(r rune) string {
	value := int(r-'A') + 10
	return string(rune('0'+value/10)) + string(rune('0'+value%10))
}
