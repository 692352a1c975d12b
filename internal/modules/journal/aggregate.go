// Package journal serves the trading journal views: entry CRUD proxied to
// the analytics backend plus the mood and calendar aggregations derived
// client-side.
package journal

import (
	"time"

	"github.com/dkoutsos/tradescope/internal/domain"
)

// CalendarWindowDays is the trailing window the PnL heatmap covers.
const CalendarWindowDays = 365

// Day statuses for the calendar heatmap. Breakeven is deliberately distinct
// from "none": a day traded to exactly zero is not a day without trades.
const (
	DayPositive  = "positive"
	DayNegative  = "negative"
	DayBreakeven = "breakeven"
	DayNone      = "none"
)

// CalendarDay is one cell of the PnL heatmap.
type CalendarDay struct {
	Date    string  `json:"date"`
	PnL     float64 `json:"pnl"`
	Entries int     `json:"entries"`
	Status  string  `json:"status"`
}

// MoodBreakdown sums PnL per emotion tag across all entries. An entry tagged
// with several emotions contributes its full PnL to each of them; entries
// missing a PnL or any emotions are skipped.
func MoodBreakdown(entries []domain.JournalEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, entry := range entries {
		if entry.PnL == nil || len(entry.Emotions) == 0 {
			continue
		}
		for _, emotion := range entry.Emotions {
			totals[emotion] += *entry.PnL
		}
	}
	return totals
}

// Calendar builds the daily PnL heatmap over the trailing year ending today.
// Every day in the window gets a cell, so the chart can distinguish
// no-trade days from breakeven ones.
func Calendar(entries []domain.JournalEntry, today time.Time) []CalendarDay {
	type dayTotal struct {
		pnl     float64
		entries int
	}

	start := today.AddDate(0, 0, -(CalendarWindowDays - 1))
	startKey := start.Format(domain.DateFormat)
	endKey := today.Format(domain.DateFormat)

	totals := map[string]dayTotal{}
	for _, entry := range entries {
		day := entry.Day()
		if day == "" || day < startKey || day > endKey {
			continue
		}
		t := totals[day]
		if entry.PnL != nil {
			t.pnl += *entry.PnL
		}
		t.entries++
		totals[day] = t
	}

	out := make([]CalendarDay, 0, CalendarWindowDays)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)
		t := totals[key]

		status := DayNone
		switch {
		case t.entries == 0:
			status = DayNone
		case t.pnl > 0:
			status = DayPositive
		case t.pnl < 0:
			status = DayNegative
		default:
			status = DayBreakeven
		}

		out = append(out, CalendarDay{
			Date:    key,
			PnL:     t.pnl,
			Entries: t.entries,
			Status:  status,
		})
	}

	return out
}
