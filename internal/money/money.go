// Package money converts user-entered decimal amounts into signed cents and
// renders cents back as dollar strings.
//
// Amounts never pass through float64: parsing and rounding happen on
// shopspring/decimal values so "0.285" becomes 29 cents and not 28.
package money

import (
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping and cent padding
	"math"    // int64 bounds
	"strings" // Input trimming

	"github.com/shopspring/decimal" // Exact decimal arithmetic
	"golang.org/x/text/language"    // Locale for digit grouping
	"golang.org/x/text/message"     // Thousands separators
)

var (
	ErrInvalidAmount = errors.New("invalid amount")      // Not a number
	ErrOutOfRange    = errors.New("amount out of range") // Does not fit int64 cents
)

const (
	maxIntegerDigits     = 17 // 10^17 dollars is already past math.MaxInt64 cents
	maxSignificantDigits = 40 // Longer inputs are not amounts anyone types
)

var (
	hundred  = decimal.NewFromInt(100)           // Cents per dollar
	maxCents = decimal.NewFromInt(math.MaxInt64) // Upper bound in cents
	minCents = decimal.NewFromInt(math.MinInt64) // Lower bound in cents
)

// printer groups the integer part with thousands separators.
var printer = message.NewPrinter(language.AmericanEnglish)

// Parse reads a decimal amount such as "12.34", "-7" or "1e3".
// Surrounding whitespace is ignored; anything else that is not a number fails.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// ToCents multiplies by 100 and rounds half away from zero.
//
// The magnitude is checked on the digit count and exponent before any
// arithmetic: "1e50000000" parses, and rounding it would build every digit.
func ToCents(d decimal.Decimal) (int64, error) {
	if d.IsZero() {
		return 0, nil
	}
	integerDigits := d.NumDigits() + int(d.Exponent()) // Digits left of the point, negative below 0.1
	if integerDigits > maxIntegerDigits {
		return 0, ErrOutOfRange
	}
	if integerDigits < -2 {
		return 0, nil // Below a tenth of a cent, rounds to zero
	}
	if d.NumDigits() > maxSignificantDigits {
		return 0, ErrOutOfRange
	}
	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, ErrOutOfRange
	}
	return cents.IntPart(), nil
}

// Abs returns the magnitude of a cents value as unsigned so MinInt64 does not overflow.
func Abs(cents int64) uint64 {
	if cents < 0 {
		return uint64(-(cents + 1)) + 1
	}
	return uint64(cents)
}

// Format renders cents as "$1,234.56", with a leading minus for negatives.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
	}
	return sign + formatMagnitude(Abs(cents))
}

// FormatAbs renders the magnitude only, "-500" becomes "$5.00".
func FormatAbs(cents int64) string {
	return formatMagnitude(Abs(cents))
}

func formatMagnitude(u uint64) string {
	return "$" + printer.Sprintf("%d", u/100) + fmt.Sprintf(".%02d", u%100)
}
