// Package dateutil parses the localized dates the upstream embeds in
// its value charts, e.g. "15 ene 2024". The month abbreviations are
// Spanish and nonstandard (September appears as both "sep" and
// "sept"), so they cannot be handled by a time.Parse layout alone.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var spanishMonths = map[string]time.Month{
	"ene":  time.January,
	"feb":  time.February,
	"mar":  time.March,
	"abr":  time.April,
	"may":  time.May,
	"jun":  time.June,
	"jul":  time.July,
	"ago":  time.August,
	"sep":  time.September,
	"sept": time.September,
	"oct":  time.October,
	"nov":  time.November,
	"dic":  time.December,
}

// ParseSpanishDate parses a "day month year" string using Spanish
// month abbreviations. Unlike the amount normalizer this one fails
// loudly: a silently defaulted date would corrupt a time series.
func ParseSpanishDate(s string) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("expected a 'day month year' date, got %q", s)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q: %w", s, err)
	}
	month, ok := spanishMonths[strings.Trim(fields[1], ".")]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q in %q", fields[1], s)
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day out of range in %q", s)
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow ("31 abr" would become May 1st),
	// which counts as a silently wrong date here
	if date.Day() != day || date.Month() != month {
		return time.Time{}, fmt.Errorf("day out of range in %q", s)
	}
	return date, nil
}
