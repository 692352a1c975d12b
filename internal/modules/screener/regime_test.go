package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func TestClassifyRegime_Bull(t *testing.T) {
	closes := flatCloses(RegimePeriod, 100)
	closes = append(closes, 120) // latest close above its long-run average

	result := ClassifyRegime(closes)

	assert.Equal(t, RegimeBull, result.Regime)
	assert.Equal(t, 120.0, result.Close)
	assert.Greater(t, result.Close, result.SMA)
}

func TestClassifyRegime_Bear(t *testing.T) {
	closes := flatCloses(RegimePeriod, 100)
	closes = append(closes, 80)

	result := ClassifyRegime(closes)

	assert.Equal(t, RegimeBear, result.Regime)
	assert.Less(t, result.Close, result.SMA)
}

func TestClassifyRegime_AtAverageIsBull(t *testing.T) {
	result := ClassifyRegime(flatCloses(RegimePeriod, 100))
	assert.Equal(t, RegimeBull, result.Regime)
	assert.InDelta(t, 100.0, result.SMA, 1e-9)
}

func TestClassifyRegime_InsufficientHistory(t *testing.T) {
	result := ClassifyRegime(flatCloses(RegimePeriod-1, 100))
	assert.Equal(t, RegimeUnknown, result.Regime)
	assert.Zero(t, result.SMA)

	assert.Equal(t, RegimeUnknown, ClassifyRegime(nil).Regime)
}
