// Package cleaner normalizes raw table rows into canonical transaction
// records: locale-ambiguous currency text becomes plain numeric values and
// wrapped multi-line rows are merged before mapping.
package cleaner

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyPrefix  = regexp.MustCompile(`[Rr][Pp]\s*`)
	currencySymbols = regexp.MustCompile(`[$€£¥]`)
	trailingMarker  = regexp.MustCompile(`(?i)\s*(DB|CR|DEBIT|CREDIT)\s*$`)
	embeddedMarker  = regexp.MustCompile(`(?i)\s*(DB|CR|DEBIT|CREDIT)\s*`)
	nonNumeric      = regexp.MustCompile(`[^\d.\-]`)
)

// CleanCurrency turns a raw statement amount string into a signed float.
// The statements mix two numeric conventions, Indonesian "1.000.000,50" and
// banking "98,779,762.35", so the separators are disambiguated before
// parsing. Currency prefixes and debit/credit markers are stripped first.
//
// It returns nil for empty or unparseable input; malformed amounts are
// expected in extracted text and never an error.
func CleanCurrency(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	s = currencyPrefix.ReplaceAllString(s, "")
	s = currencySymbols.ReplaceAllString(s, "")
	s = trailingMarker.ReplaceAllString(s, "")
	s = embeddedMarker.ReplaceAllString(s, " ")

	s = normalizeSeparators(s)

	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

// normalizeSeparators rewrites the string so that '.' is the decimal point
// and no thousands separators remain.
//
// Rules, matching the conventions seen in real statements:
//   - both ',' and '.' present: the separator appearing last is the decimal
//     point ("1.000.000,50" and "98,779,762.35" are both valid inputs), the
//     other is the thousands separator
//   - only ',': multiple commas, or one comma with at most two digits after
//     it, mean dots were thousands separators and the comma is decimal;
//     otherwise the single comma is a thousands separator
//   - only '.': multiple dots are thousands separators; a single dot is the
//     decimal point
func normalizeSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case hasComma:
		commas := strings.Count(s, ",")
		tail := s[strings.LastIndex(s, ",")+1:]
		if commas > 1 || len(strings.TrimSpace(tail)) <= 2 {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case hasDot && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	default:
		return s
	}
}
