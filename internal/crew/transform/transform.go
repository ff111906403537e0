// Package transform bridges free-text starter-form input and the typed
// persistence schema: numeric cleaning, currency display formatting, rate
// derivation and digit-only field constraints.
package transform

import (
	"strconv"
	"strings"
)

const (
	// workWeekDays is the six-day working week the daily rate derives from.
	// Business rule, not configuration.
	workWeekDays = 6

	// MaxBankAccountDigits caps the bank account number field.
	MaxBankAccountDigits = 24
	// MaxTaxIDDigits caps the IF (tax identifier) field.
	MaxTaxIDDigits = 15

	currencySuffix = " MAD"
)

// CleanNumber extracts a numeric value from free-form input. Every character
// other than digits and the decimal point is stripped, then the longest
// numeric prefix of what remains is parsed. nil is returned for empty or
// unparseable input, never zero and never an error, because "field not set"
// and "field set to zero" are different things in the stored schema.
func CleanNumber(s string) *float64 {
	if s == "" {
		return nil
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := numericPrefix(b.String())
	if cleaned == "" || cleaned == "." {
		return nil
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &n
}

// numericPrefix returns the longest leading run of s that still reads as a
// number: digits, at most one decimal point. Trailing garbage like a second
// "." is dropped rather than failing the whole parse.
func numericPrefix(s string) string {
	sawDot := false
	for i, r := range s {
		if r == '.' {
			if sawDot {
				return s[:i]
			}
			sawDot = true
			continue
		}
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}

// FormatCurrency renders a numeric value for display: two decimal places,
// space-separated thousands, " MAD" suffix.
func FormatCurrency(v float64) string {
	fixed := strconv.FormatFloat(v, 'f', 2, 64)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-3:]

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(' ')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)
	b.WriteString(currencySuffix)
	return b.String()
}

// DeriveFromRate computes the fields that follow automatically from the rate
// when the rate field loses focus: the daily rate over a six-day week and the
// doubled seventh-day-worked amount.
func DeriveFromRate(rate float64) (dailyRate, dayWorked float64) {
	dailyRate = rate / workWeekDays
	dayWorked = dailyRate * 2
	return dailyRate, dayWorked
}

// DigitsOnly keeps the digit characters of the input in their original order,
// truncated to max. Excess characters are dropped silently; no validation
// error is ever raised.
func DigitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			if b.Len() >= max {
				break
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
