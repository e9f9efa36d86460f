package tally

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ymdRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyRe = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// FormatDate converts a free-form invoice date into Tally's 8-digit
// YYYYMMDD form. Dot, slash and space separators are normalized to
// hyphens first; both YYYY-MM-DD and DD-MM-YYYY are accepted. Empty or
// unparseable input falls back to the current date.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().Format("20060102")
	}

	d := strings.NewReplacer(".", "-", "/", "-", " ", "-").Replace(s)

	if ymdRe.MatchString(d) {
		return strings.ReplaceAll(d, "-", "")
	}

	if m := dmyRe.FindStringSubmatch(d); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s%02d%02d", m[3], month, day)
	}

	return time.Now().Format("20060102")
}

// BankDate renders a bank-transaction date by stripping separators, but
// only when the input has exactly three hyphen-separated components;
// anything else renders empty. Unlike the invoice path there is no
// fallback to today; the asymmetry mirrors the statement import contract.
func BankDate(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[0] + parts[1] + parts[2]
}
