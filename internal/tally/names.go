// Package tally encodes normalized invoice and bank-statement records
// into Tally Prime's XML import format. All encode functions are pure:
// they cannot fail on well-typed input and produce best-effort output
// when fields are missing.
package tally

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
)

// MaxNameLength is Tally's practical limit for ledger and item names.
const MaxNameLength = 50

var (
	disallowedRe = regexp.MustCompile(`[^a-zA-Z0-9\s\-\.\(\)%]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanName sanitizes a free-text name for use as a Tally master name:
// only letters, digits, space, hyphen, period, parentheses and percent
// survive; internal whitespace collapses; the result is truncated to 50
// characters. An empty result becomes the placeholder.
func CleanName(s string) string {
	return cleanNameOr(s, model.UnnamedLedger)
}

func cleanNameOr(s, placeholder string) string {
	cleaned := disallowedRe.ReplaceAllString(s, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > MaxNameLength {
		cleaned = cleaned[:MaxNameLength]
	}
	if cleaned == "" {
		return placeholder
	}
	return cleaned
}

// FormatRate renders a tax rate the way Tally ledger names embed it: an
// integral rate without a decimal point, anything else with one decimal
// digit, trailing zero trimmed.
func FormatRate(rate decimal.Decimal) string {
	if rate.IsInteger() {
		return rate.Truncate(0).String()
	}
	s := rate.StringFixed(1)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Sanitize prepares free text for the wire: apostrophes become spaces
// (Tally historically chokes on &apos;). Entity escaping of &, <, >, "
// happens in the single etree serialization pass.
func Sanitize(s string) string {
	return strings.ReplaceAll(s, "'", " ")
}

// Ledger name and group templates. The rate-bucket and duty names embed
// the formatted rate so each distinct rate gets its own master.

func partyGroup(sales bool) string {
	if sales {
		return "Sundry Debtors"
	}
	return "Sundry Creditors"
}

func accountsGroup(sales bool) string {
	if sales {
		return "Sales Accounts"
	}
	return "Purchase Accounts"
}

func rateLedgerName(rate decimal.Decimal, sales bool) string {
	prefix := "Purchase"
	if sales {
		prefix = "Sale"
	}
	return prefix + " " + FormatRate(rate) + "%"
}

func dutyPrefix(sales bool) string {
	if sales {
		return "Output"
	}
	return "Input"
}

func dutyLedgerName(head gst.DutyHead, rate decimal.Decimal, sales bool) string {
	var kind string
	switch head {
	case gst.DutyCentral:
		kind = "CGST"
	case gst.DutyState:
		kind = "SGST"
	case gst.DutyIntegrated:
		kind = "IGST"
	}
	return dutyPrefix(sales) + " " + kind + " " + FormatRate(rate) + "%"
}

func stockItemName(description string) string {
	return cleanNameOr(description, model.UnknownItem)
}
