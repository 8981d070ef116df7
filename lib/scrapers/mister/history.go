package mister

import (
	"errors"
	"fmt"
	"slices"

	"misterstats-backend/lib/dateutil"
)

// ValueHistory decodes the market value chart of a player detail into
// calendar-dated points, preserving upstream order. Points whose date
// fails to parse are skipped and reported through the joined error:
// a wrong date must never silently enter a time series.
func ValueHistory(detail PlayerDetail) ([]ValueHistoryPoint, error) {
	var points []ValueHistoryPoint
	var errList []error
	for _, p := range detail.ValuesChart.Points {
		date, err := dateutil.ParseSpanishDate(p.Date)
		if err != nil {
			errList = append(errList, fmt.Errorf("chart point %q: %w", p.Date, err))
			continue
		}
		points = append(points, ValueHistoryPoint{
			Date:  date,
			Value: p.Value,
		})
	}
	return points, errors.Join(errList...)
}

// SortValueHistory orders points chronologically for consumers that
// need a monotonic time axis. The upstream usually delivers them in
// order already, but parsing does not guarantee it.
func SortValueHistory(points []ValueHistoryPoint) {
	slices.SortStableFunc(points, func(a, b ValueHistoryPoint) int {
		return a.Date.Compare(b.Date)
	})
}
