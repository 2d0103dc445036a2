// Package currencyutils parses the locale-ambiguous monetary formats found
// in Colombian accounting spreadsheets into decimal values.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbolRegex strips currency symbols, letters and whitespace that
// commonly decorate amount cells ("$ 1.234,56", "COP 500", "1 000,00").
var currencySymbolRegex = regexp.MustCompile(`[$€£¥\sA-Za-z\x{00a0}]`)

// ParseAmount parses a string amount into its absolute decimal value.
// Supported patterns, detected from separator positions:
//
//	"1.234.567,89"  thousands-dot, decimal-comma  -> 1234567.89
//	"1,234,567.89"  thousands-comma, decimal-dot  -> 1234567.89
//	"1234,56"       bare decimal-comma            -> 1234.56
//
// Unparsable input yields zero, never an error: a garbage value cell makes
// the row skip on the value<=0 rule rather than aborting the file. The sign
// is discarded since these amounts carry no directional meaning.
func ParseAmount(amountStr string) decimal.Decimal {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" || standardized == "-" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero
	}
	return amount.Abs()
}

// StandardizeAmount rewrites an amount string into the plain "1234567.89"
// form decimal.NewFromString accepts. The last separator present decides the
// format: a comma after the last dot means decimal-comma, a dot after the
// last comma means decimal-dot, a lone comma is always a decimal separator.
func StandardizeAmount(amountStr string) string {
	s := currencySymbolRegex.ReplaceAllString(amountStr, "")
	if s == "" {
		return ""
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastComma >= 0 && lastDot >= 0 && lastDot < lastComma:
		// 1.234.567,89
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastComma >= 0 && lastDot >= 0:
		// 1,234,567.89
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		// 1234,56
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		// 1.234.567 with no decimals: dots are thousands separators
		s = strings.ReplaceAll(s, ".", "")
	}

	if neg {
		s = "-" + s
	}
	return s
}

// FormatAmount renders an amount with two decimals and the currency code,
// e.g. "COP 1234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return strings.ToUpper(currency) + " " + amount.StringFixed(2)
}
