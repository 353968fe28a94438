package validation

import (
	"fmt"
	"regexp"
)

// Validation rule limits
var (
	// Name max length (sections and students share it)
	NameMaxLength = 100

	// National ID (cedula) max length
	NationalIDMaxLength = 10
)

// Violation reason texts shared by the rule builders.
const (
	ReasonRequired      = "is required"
	ReasonInvalidFormat = "has an invalid format"
)

// StringValidation checks a string value against a rule set.
type StringValidation struct {
	Value         string
	MinLen        int
	MaxLen        int
	Required      bool
	Pattern       *regexp.Regexp
	PatternReason string
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets a regex pattern and the reason reported when it fails.
func (v *StringValidation) WithPattern(pattern *regexp.Regexp, reason string) *StringValidation {
	v.Pattern = pattern
	v.PatternReason = reason
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Check returns the list of violated rules, empty when the value is valid.
func (v *StringValidation) Check() []string {
	var reasons []string

	if v.Value == "" {
		if v.Required {
			reasons = append(reasons, ReasonRequired)
		}
		// Skip other rules for empty values
		return reasons
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		reasons = append(reasons, fmt.Sprintf("must be at least %d characters", v.MinLen))
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		reasons = append(reasons, fmt.Sprintf("must be at most %d characters", v.MaxLen))
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		reason := v.PatternReason
		if reason == "" {
			reason = ReasonInvalidFormat
		}
		reasons = append(reasons, reason)
	}

	return reasons
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	return len(v.Check()) == 0
}

// NumericValidation checks an integer value against a rule set.
type NumericValidation struct {
	Value int64
	Min   int64
	Max   int64
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int64) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int64) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int64) *NumericValidation {
	v.Max = max
	return v
}

// Check returns the list of violated rules, empty when the value is valid.
func (v *NumericValidation) Check() []string {
	var reasons []string

	if v.Min != 0 && v.Value < v.Min {
		reasons = append(reasons, fmt.Sprintf("must be at least %d", v.Min))
	}

	if v.Max != 0 && v.Value > v.Max {
		reasons = append(reasons, fmt.Sprintf("must be at most %d", v.Max))
	}

	return reasons
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	return len(v.Check()) == 0
}
