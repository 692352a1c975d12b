package backtest

import (
	"math"

	"github.com/dkoutsos/tradescope/internal/domain"
)

// Drawdown derives the peak-to-trough percentage series from a cumulative-PnL
// curve. Input order is not trusted: points are re-sorted by date before the
// running peak is tracked. Every output value is <= 0 and the first point is
// exactly 0, since it establishes the initial peak. The peak > 0 guard keeps
// the division defined for degenerate capital inputs.
func Drawdown(points []domain.SeriesPoint, initialCapital float64) []domain.SeriesPoint {
	if len(points) == 0 {
		return []domain.SeriesPoint{}
	}

	sorted := make([]domain.SeriesPoint, len(points))
	copy(sorted, points)
	domain.SortSeries(sorted)

	out := make([]domain.SeriesPoint, 0, len(sorted))
	maxEquity := math.Inf(-1)

	for _, p := range sorted {
		equity := initialCapital + p.Value
		if equity > maxEquity {
			maxEquity = equity
		}

		drawdown := 0.0
		if maxEquity > 0 {
			drawdown = (equity - maxEquity) / maxEquity * 100
		}

		out = append(out, domain.SeriesPoint{Date: p.Date, Value: drawdown})
	}

	return out
}

// MaxDrawdown returns the deepest drawdown of a cumulative-PnL curve as a
// negative percentage, or 0 for flat and empty curves.
func MaxDrawdown(points []domain.SeriesPoint, initialCapital float64) float64 {
	worst := 0.0
	for _, p := range Drawdown(points, initialCapital) {
		if p.Value < worst {
			worst = p.Value
		}
	}
	return worst
}
