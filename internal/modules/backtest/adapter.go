// Package backtest normalizes backend backtest responses into the canonical
// report consumed by the results view and derives its chart series.
package backtest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dkoutsos/tradescope/internal/domain"
)

// DefaultStartingCapital is the assumed account size for simple backtest
// reports, which carry absolute equity but never state what the run started
// with. Overridable via STARTING_CAPITAL; kept as an explicit default rather
// than an inline literal.
const DefaultStartingCapital = 10000

// Verdict labels for the results screen.
const (
	VerdictProfitable = "PROFITABLE"
	VerdictNeedsWork  = "NEEDS WORK"
)

// Metrics is the scalar summary block of a canonical report.
type Metrics struct {
	TotalPnL   float64 `json:"total_pnl"`
	WinRate    float64 `json:"win_rate"` // fraction, 0..1
	TotalFees  float64 `json:"total_fees"`
	Expectancy float64 `json:"expectancy"`
	Sharpe     float64 `json:"sharpe"`
	Drawdown   float64 `json:"drawdown"`
}

// MonthlyIncome is realized PnL bucketed by calendar month.
type MonthlyIncome struct {
	Month  string  `json:"month"` // "Jan 2006"
	Income float64 `json:"income"`
}

// StrategyGroup summarizes one strategy/symbol combination within a report.
type StrategyGroup struct {
	Strategy  string  `json:"strategy"`
	Symbol    string  `json:"symbol"`
	Trades    int     `json:"trades"`
	TotalPnL  float64 `json:"total_pnl"`
	WinRate   float64 `json:"win_rate"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

// Report is the canonical backtest view model ("rich" shape). Rich backend
// responses already look like this and pass through untouched.
type Report struct {
	StrategyMetrics *Metrics             `json:"strategy_metrics"`
	PortfolioCurve  []domain.SeriesPoint `json:"portfolio_curve"`
	MonthlyIncome   []MonthlyIncome      `json:"monthly_income"`
	StrategyGroups  []StrategyGroup      `json:"strategy_groups"`
	Verdict         string               `json:"verdict"`
	VerdictColor    string               `json:"verdict_color"`
}

// TradeRow is one row of a simple backtest's trade log. Equity is populated
// on SELL rows only.
type TradeRow struct {
	Date   string   `json:"date"`
	Type   string   `json:"type"` // BUY or SELL
	Price  float64  `json:"price"`
	Equity *float64 `json:"equity,omitempty"`
}

// simpleResult is the flat "simple" backtest shape: a trade log plus scalar
// summary fields.
type simpleResult struct {
	Log            []TradeRow `json:"log"`
	StrategyReturn float64    `json:"strategy_return"`
	WinRate        string     `json:"win_rate"` // e.g. "55.0%"
	FinalEquity    float64    `json:"final_equity"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Ticker         string     `json:"ticker"`
	Strategy       string     `json:"strategy"`
	Trades         int        `json:"trades"`
}

// shapeProbe sniffs which response shape arrived.
type shapeProbe struct {
	StrategyMetrics json.RawMessage `json:"strategy_metrics"`
	Log             json.RawMessage `json:"log"`
}

// Adapt normalizes a backend backtest payload into the canonical report.
// Rich payloads pass through unchanged, simple payloads are rebuilt from
// their trade log, and anything else yields nil so the caller can render a
// "no results" state. startingCapital <= 0 falls back to the default.
func Adapt(raw json.RawMessage, startingCapital float64) (*Report, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if startingCapital <= 0 {
		startingCapital = DefaultStartingCapital
	}

	var probe shapeProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	if present(probe.StrategyMetrics) {
		// Already canonical.
		var report Report
		if err := json.Unmarshal(raw, &report); err != nil {
			return nil, err
		}
		return &report, nil
	}

	if !present(probe.Log) {
		return nil, nil
	}

	var simple simpleResult
	if err := json.Unmarshal(raw, &simple); err != nil {
		return nil, err
	}
	return adaptSimple(simple, startingCapital), nil
}

// present reports whether a JSON field was set to something other than null.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func adaptSimple(simple simpleResult, startingCapital float64) *Report {
	curve := equityCurve(simple, startingCapital)
	winRate := parseWinRate(simple.WinRate)

	verdict, color := VerdictNeedsWork, "red"
	if simple.StrategyReturn > 0 {
		verdict, color = VerdictProfitable, "green"
	}

	return &Report{
		StrategyMetrics: &Metrics{
			TotalPnL: simple.FinalEquity - startingCapital,
			WinRate:  winRate,
			// Fees, expectancy, sharpe and drawdown are not derivable
			// from the simple shape and stay zero.
		},
		PortfolioCurve: curve,
		MonthlyIncome:  monthlyIncome(simple.Log, startingCapital),
		StrategyGroups: []StrategyGroup{
			{
				Strategy:  simple.Strategy,
				Symbol:    simple.Ticker,
				Trades:    simple.Trades,
				TotalPnL:  simple.FinalEquity - startingCapital,
				WinRate:   winRate,
				StartDate: normalizeDate(simple.StartDate),
				EndDate:   normalizeDate(simple.EndDate),
			},
		},
		Verdict:      verdict,
		VerdictColor: color,
	}
}

// equityCurve builds the portfolio curve from SELL rows that carry equity,
// prepending a synthetic starting point when there is anything to plot.
func equityCurve(simple simpleResult, startingCapital float64) []domain.SeriesPoint {
	points := []domain.SeriesPoint{}
	for _, row := range simple.Log {
		if row.Type != "SELL" || row.Equity == nil {
			continue
		}
		points = append(points, domain.SeriesPoint{
			Date:  normalizeDate(row.Date),
			Value: *row.Equity,
		})
	}

	if len(points) == 0 {
		return points
	}

	curve := make([]domain.SeriesPoint, 0, len(points)+1)
	curve = append(curve, domain.SeriesPoint{
		Date:  normalizeDate(simple.StartDate),
		Value: startingCapital,
	})
	return append(curve, points...)
}

// monthlyIncome walks SELL rows in log order, attributing each equity step to
// the month the trade closed in. Months appear in first-trade order.
func monthlyIncome(log []TradeRow, startingCapital float64) []MonthlyIncome {
	totals := map[string]float64{}
	var order []string

	previousEquity := startingCapital
	for _, row := range log {
		if row.Type != "SELL" || row.Equity == nil {
			continue
		}

		month := monthKey(row.Date)
		if _, seen := totals[month]; !seen {
			order = append(order, month)
		}
		totals[month] += *row.Equity - previousEquity
		previousEquity = *row.Equity
	}

	out := make([]MonthlyIncome, 0, len(order))
	for _, month := range order {
		out = append(out, MonthlyIncome{Month: month, Income: totals[month]})
	}
	return out
}

func monthKey(date string) string {
	t := domain.ParseDate(date)
	if t.IsZero() {
		return date
	}
	return t.Format("Jan 2006")
}

func normalizeDate(date string) string {
	t := domain.ParseDate(date)
	if t.IsZero() {
		return date
	}
	return t.Format(domain.DateFormat)
}

// parseWinRate converts a "55.2%" style string to a 0..1 fraction,
// coercing anything unparsable to 0.
func parseWinRate(s string) float64 {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v / 100
}
