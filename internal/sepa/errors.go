// =============================================================================
// Sephpa - Validation Errors
// =============================================================================
//
// Validation happens eagerly when settings are constructed and when a payment
// is added. A failed validation surfaces synchronously as a *ValidationError
// and never mutates the collection; generation cannot fail on data that
// passed validation.
//
// =============================================================================

package sepa

import (
	"fmt"
	"strings"
)

// Validation rule identifiers carried by ValidationError.
const (
	// RuleRequired means one or more mandatory fields are absent. All
	// missing names are reported, not just the first.
	RuleRequired = "required"

	// RuleConditionalRequired means the amendment indicator is set but none
	// of the original-mandate fields are.
	RuleConditionalRequired = "conditional_required"

	// RuleSequenceType means the sequence type conflicts with the payment
	// (SMNDA outside a FRST collection) or is not a known sequence type.
	RuleSequenceType = "sequence_type"
)

// ValidationError describes why a settings value or payment was rejected.
type ValidationError struct {
	// Rule is one of the Rule* constants.
	Rule string

	// Fields names the missing or offending fields.
	Fields []string

	// Message is a human-readable description of the violation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// newRequiredError reports absent mandatory fields, naming all of them.
func newRequiredError(missing []string) *ValidationError {
	return &ValidationError{
		Rule:    RuleRequired,
		Fields:  missing,
		Message: fmt.Sprintf("required inputs missing: %s", strings.Join(missing, ", ")),
	}
}

// newConditionalError reports an amendment without any original-mandate field.
func newConditionalError() *ValidationError {
	return &ValidationError{
		Rule:   RuleConditionalRequired,
		Fields: append([]string(nil), originalMandateFields...),
		Message: fmt.Sprintf("amendment indicator is set, so at least one of the following inputs is required: %s",
			strings.Join(originalMandateFields, ", ")),
	}
}

// newSequenceTypeError reports a sequence-type conflict.
func newSequenceTypeError(message string) *ValidationError {
	return &ValidationError{
		Rule:    RuleSequenceType,
		Fields:  []string{"seqTp"},
		Message: message,
	}
}
