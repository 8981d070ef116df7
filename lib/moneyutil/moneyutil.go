// Package moneyutil normalizes the euro amounts the upstream renders
// for display: `.`-grouped thousands with a trailing € symbol, e.g.
// "51.921.000 €". Amounts are best-effort display data, so parsing
// never fails, it degrades to 0.
package moneyutil

import (
	"strconv"
	"strings"
)

const NotAvailable = "N/A"

// ParseEuros extracts the first run of digits and `.` separators from
// the input, strips the separators and parses the rest as an integer.
// Currency symbols, whitespace and any trailing junk are ignored.
// Inputs without digits parse to 0.
func ParseEuros(s string) int {
	var token strings.Builder
	started := false
	for _, c := range s {
		if c >= '0' && c <= '9' {
			token.WriteRune(c)
			started = true
			continue
		}
		if c == '.' && started {
			continue
		}
		if started {
			break
		}
	}
	if !started {
		return 0
	}
	v, err := strconv.Atoi(token.String())
	if err != nil {
		return 0
	}
	return v
}

// FormatEuros renders an amount with `.`-grouped thousands and a
// trailing € symbol, the way the upstream displays it.
func FormatEuros(v int) string {
	var out strings.Builder
	if v < 0 {
		out.WriteByte('-')
		v = -v
	}
	out.WriteString(group(v))
	out.WriteString(" €")
	return out.String()
}

// FormatSigned renders a delta with an explicit sign and `.`-grouped
// thousands, e.g. +1.300.000 or -200.000.
func FormatSigned(v int) string {
	if v < 0 {
		return "-" + group(-v)
	}
	return "+" + group(v)
}

func group(v int) string {
	digits := strconv.Itoa(v)
	var out strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
