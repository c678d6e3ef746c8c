package validate

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"too short", "ab", false},
		{"minimum length", "abc", true},
		{"maximum length", strings.Repeat("a", 20), true},
		{"over maximum", strings.Repeat("a", 21), false},
		{"digits underscore hyphen", "C-001_x", true},
		{"space rejected", "C 001", false},
		{"empty", "", false},
		{"special chars rejected", "C001$", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CustomerID(tt.in))
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "Asha Rao", true},
		{"punctuation", "O'Neil Jr.", true},
		{"hyphenated", "Jean-Luc", true},
		{"single char", "A", false},
		{"two chars", "Al", true},
		{"hundred chars", strings.Repeat("a", 100), true},
		{"over hundred", strings.Repeat("a", 101), false},
		{"digits rejected", "Agent 47", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain digits", "9876543210", true},
		{"with country code", "+919876543210", true},
		{"spaces and dashes stripped", "+91 98765-43210", true},
		{"parentheses stripped", "(987) 654-3210", true},
		{"nine digits", "987654321", false},
		{"sixteen digits", "9876543210987654", false},
		{"letters rejected", "98765abc10", false},
		{"plus in middle rejected", "98+76543210", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizePhone("+91 (987) 654-3210"))
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid date", "2024-01-15", true},
		{"leap day", "2024-02-29", true},
		{"non leap feb 29", "2023-02-29", false},
		{"feb 30", "2024-02-30", false},
		{"month 13", "2024-13-01", false},
		{"day 99", "2024-05-99", false},
		{"wrong format", "15-01-2024", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"zero", "0", true},
		{"integer", "4000", true},
		{"decimal", "1234.56", true},
		{"negative", "-1", false},
		{"not a number", "abc", false},
		{"empty", "", false},
		{"infinity", "Inf", false},
		{"nan", "NaN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("  hello  "))
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "", Sanitize("   "))

	long := strings.Repeat("x", 600)
	assert.Len(t, Sanitize(long), MaxTextLength)

	// Truncation counts runes, not bytes.
	unicodeLong := strings.Repeat("é", 600)
	assert.Equal(t, MaxTextLength, len([]rune(Sanitize(unicodeLong))))
}

func TestEscapeSearch(t *testing.T) {
	payloads := []string{
		".*",
		"(a+)+$",
		"ravi(",
		"[a-z]{1,9999}",
		`kumar\`,
	}

	for _, p := range payloads {
		escaped := EscapeSearch(p)
		re, err := regexp.Compile(escaped)
		assert.NoError(t, err, "escaped term must always compile: %q", p)
		assert.True(t, re.MatchString("prefix "+p+" suffix"),
			"escaped term must match itself literally: %q", p)
		assert.False(t, re.MatchString("completely unrelated"),
			"escaped term must not act as a wildcard: %q", p)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c\\d`, EscapeLike(`c\d`))
}
