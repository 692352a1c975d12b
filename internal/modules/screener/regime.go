// Package screener proxies strategy screener queries to the analytics
// backend and derives the market regime classification client-side.
package screener

import (
	"github.com/markcheno/go-talib"
)

// RegimePeriod is the simple moving average window used for the bull/bear
// classification.
const RegimePeriod = 200

// Regime labels.
const (
	RegimeBull    = "BULL"
	RegimeBear    = "BEAR"
	RegimeUnknown = "UNKNOWN"
)

// RegimeResult is the market regime view model.
type RegimeResult struct {
	Regime string  `json:"regime"`
	Close  float64 `json:"close,omitempty"`
	SMA    float64 `json:"sma_200,omitempty"`
}

// ClassifyRegime compares the latest close against its 200-day simple
// moving average: at or above is BULL, below is BEAR. Histories shorter than
// the window classify as UNKNOWN rather than guessing.
func ClassifyRegime(closes []float64) RegimeResult {
	if len(closes) < RegimePeriod {
		return RegimeResult{Regime: RegimeUnknown}
	}

	sma := talib.Sma(closes, RegimePeriod)
	latestSMA := sma[len(sma)-1]
	latestClose := closes[len(closes)-1]

	regime := RegimeBear
	if latestClose >= latestSMA {
		regime = RegimeBull
	}

	return RegimeResult{
		Regime: regime,
		Close:  latestClose,
		SMA:    latestSMA,
	}
}
