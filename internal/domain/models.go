// Package domain contains the core types shared across gateway modules.
// All of them are transient view-model inputs: the analytics backend is the
// system of record and nothing here is persisted beyond the response cache.
package domain

import (
	"sort"
	"time"
)

// DateFormat is the canonical date-only format used in chart series keys.
const DateFormat = "2006-01-02"

// SeriesPoint is a single chart point. Date is always normalized to
// YYYY-MM-DD so series sort correctly with a plain string compare.
type SeriesPoint struct {
	Date  string  `json:"x"`
	Value float64 `json:"y"`
}

// SortSeries orders points ascending by date in place.
func SortSeries(points []SeriesPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
}

// CollapseDuplicates returns the series with duplicate dates collapsed to the
// latest value for that date. Charting libraries choke on repeated x values,
// so every series handed to a chart goes through this first. The input is
// re-sorted; the last point for a date wins.
func CollapseDuplicates(points []SeriesPoint) []SeriesPoint {
	if len(points) == 0 {
		return []SeriesPoint{}
	}

	sorted := make([]SeriesPoint, len(points))
	copy(sorted, points)
	SortSeries(sorted)

	out := make([]SeriesPoint, 0, len(sorted))
	for _, p := range sorted {
		if n := len(out); n > 0 && out[n-1].Date == p.Date {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// ParseDate parses the date representations the backend emits: date-only,
// RFC3339, and RFC3339 without zone. Returns the zero time when nothing fits.
func ParseDate(s string) time.Time {
	for _, layout := range []string{DateFormat, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// JournalEntry is a trading journal record as served by the backend.
// Either EntryDate (preferred) or CreatedAt identifies the trading day.
type JournalEntry struct {
	ID        int64    `json:"id"`
	CreatedAt int64    `json:"created_at,omitempty"` // epoch seconds
	EntryDate string   `json:"entry_date,omitempty"` // YYYY-MM-DD
	Symbol    string   `json:"symbol"`
	Strategy  string   `json:"strategy"`
	Sentiment string   `json:"sentiment"`
	Notes     string   `json:"notes"`
	PnL       *float64 `json:"pnl,omitempty"`
	Emotions  []string `json:"emotions,omitempty"`
}

// Day returns the entry's trading day as YYYY-MM-DD, preferring the explicit
// entry date over the creation timestamp. Empty string when neither is usable.
func (e JournalEntry) Day() string {
	if e.EntryDate != "" {
		return e.EntryDate
	}
	if e.CreatedAt > 0 {
		return time.Unix(e.CreatedAt, 0).Format(DateFormat)
	}
	return ""
}

// Position is a single holding pasted into the portfolio risk view.
type Position struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
}
