// internal/pkg/validate/validate.go
package validate

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var (
	customerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	namePattern       = regexp.MustCompile(`^[A-Za-z\s.\-']+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	phoneStripPattern = regexp.MustCompile(`[\s\-()]`)
)

// CustomerID reports whether s is a well-formed customer identifier:
// 3-20 characters, alphanumeric plus underscore and hyphen.
func CustomerID(s string) bool {
	return customerIDPattern.MatchString(s)
}

// Name reports whether s is a valid customer name: 2-100 characters,
// letters, spaces and common punctuation only.
func Name(s string) bool {
	if len(s) < 2 || len(s) > 100 {
		return false
	}
	return namePattern.MatchString(s)
}

// Phone reports whether s is a valid phone number after stripping
// spaces, dashes and parentheses: optional leading +, 10-15 digits.
func Phone(s string) bool {
	cleaned := phoneStripPattern.ReplaceAllString(s, "")
	return phonePattern.MatchString(cleaned)
}

// NormalizePhone returns the phone number with spaces, dashes and
// parentheses removed. Callers should check Phone first.
func NormalizePhone(s string) string {
	return phoneStripPattern.ReplaceAllString(s, "")
}

// Date reports whether s is a real calendar date in YYYY-MM-DD format.
// time.Parse rejects calendrically invalid values like 2024-02-30.
func Date(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Amount reports whether s parses as a finite, non-negative number.
func Amount(s string) bool {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return AmountValue(v)
}

// AmountValue reports whether v is a finite, non-negative number.
func AmountValue(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0
}
