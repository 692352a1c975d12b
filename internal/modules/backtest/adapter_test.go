package backtest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoutsos/tradescope/internal/domain"
)

func simplePayload(t *testing.T, overrides map[string]interface{}) json.RawMessage {
	t.Helper()

	payload := map[string]interface{}{
		"log": []map[string]interface{}{
			{"date": "2024-01-10", "type": "BUY", "price": 100.0},
			{"date": "2024-01-20", "type": "SELL", "price": 110.0, "equity": 10100.0},
			{"date": "2024-02-05", "type": "BUY", "price": 105.0},
			{"date": "2024-02-15", "type": "SELL", "price": 102.0, "equity": 10050.0},
		},
		"strategy_return": 0.5,
		"win_rate":        "50.0%",
		"final_equity":    10050.0,
		"start_date":      "2024-01-01",
		"end_date":        "2024-03-01",
		"ticker":          "AAPL",
		"strategy":        "sma_cross",
		"trades":          2,
	}
	for k, v := range overrides {
		payload[k] = v
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestAdapt_SimpleShape(t *testing.T) {
	report, err := Adapt(simplePayload(t, nil), DefaultStartingCapital)
	require.NoError(t, err)
	require.NotNil(t, report)

	require.NotNil(t, report.StrategyMetrics)
	assert.InDelta(t, 50.0, report.StrategyMetrics.TotalPnL, 1e-9, "total_pnl = final_equity - starting capital")
	assert.InDelta(t, 0.5, report.StrategyMetrics.WinRate, 1e-9)
	assert.Zero(t, report.StrategyMetrics.TotalFees)
	assert.Zero(t, report.StrategyMetrics.Sharpe)
	assert.Zero(t, report.StrategyMetrics.Drawdown)

	assert.Equal(t, VerdictProfitable, report.Verdict)
	assert.Equal(t, "green", report.VerdictColor)

	// Synthetic starting point + one point per SELL row with equity
	require.Len(t, report.PortfolioCurve, 3)
	assert.Equal(t, domain.SeriesPoint{Date: "2024-01-01", Value: 10000}, report.PortfolioCurve[0])
	assert.Equal(t, domain.SeriesPoint{Date: "2024-01-20", Value: 10100}, report.PortfolioCurve[1])
	assert.Equal(t, domain.SeriesPoint{Date: "2024-02-15", Value: 10050}, report.PortfolioCurve[2])

	require.Len(t, report.MonthlyIncome, 2)
	assert.Equal(t, MonthlyIncome{Month: "Jan 2024", Income: 100}, report.MonthlyIncome[0])
	assert.Equal(t, MonthlyIncome{Month: "Feb 2024", Income: -50}, report.MonthlyIncome[1])

	require.Len(t, report.StrategyGroups, 1)
	group := report.StrategyGroups[0]
	assert.Equal(t, "sma_cross", group.Strategy)
	assert.Equal(t, "AAPL", group.Symbol)
	assert.Equal(t, 2, group.Trades)
	assert.InDelta(t, 50.0, group.TotalPnL, 1e-9)
}

func TestAdapt_LosingRunVerdict(t *testing.T) {
	report, err := Adapt(simplePayload(t, map[string]interface{}{
		"strategy_return": -2.3,
		"final_equity":    9770.0,
	}), DefaultStartingCapital)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, VerdictNeedsWork, report.Verdict)
	assert.Equal(t, "red", report.VerdictColor)
	assert.InDelta(t, -230.0, report.StrategyMetrics.TotalPnL, 1e-9)
}

func TestAdapt_FlatReturnIsNotProfitable(t *testing.T) {
	report, err := Adapt(simplePayload(t, map[string]interface{}{"strategy_return": 0.0}), 0)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, VerdictNeedsWork, report.Verdict)
}

func TestAdapt_UnparsableWinRateCoercedToZero(t *testing.T) {
	for _, winRate := range []string{"", "n/a", "NaN%", "--"} {
		report, err := Adapt(simplePayload(t, map[string]interface{}{"win_rate": winRate}), DefaultStartingCapital)
		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Zero(t, report.StrategyMetrics.WinRate, "win_rate %q should coerce to 0", winRate)
	}
}

func TestAdapt_EmptyLogYieldsEmptyCurve(t *testing.T) {
	report, err := Adapt(simplePayload(t, map[string]interface{}{
		"log": []map[string]interface{}{},
	}), DefaultStartingCapital)
	require.NoError(t, err)
	require.NotNil(t, report)

	// No SELL points means no synthetic start point either
	assert.Empty(t, report.PortfolioCurve)
	assert.Empty(t, report.MonthlyIncome)
}

func TestAdapt_CustomStartingCapital(t *testing.T) {
	report, err := Adapt(simplePayload(t, nil), 5000)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.InDelta(t, 5050.0, report.StrategyMetrics.TotalPnL, 1e-9)
	assert.Equal(t, domain.SeriesPoint{Date: "2024-01-01", Value: 5000}, report.PortfolioCurve[0])
}

func TestAdapt_RichShapePassesThrough(t *testing.T) {
	rich := &Report{
		StrategyMetrics: &Metrics{TotalPnL: 1234, WinRate: 0.61, Sharpe: 1.4},
		PortfolioCurve: []domain.SeriesPoint{
			{Date: "2024-01-01", Value: 0},
			{Date: "2024-02-01", Value: 1234},
		},
		MonthlyIncome:  []MonthlyIncome{{Month: "Jan 2024", Income: 1234}},
		StrategyGroups: []StrategyGroup{{Strategy: "momentum", Symbol: "MSFT", Trades: 9}},
		Verdict:        VerdictProfitable,
		VerdictColor:   "green",
	}
	raw, err := json.Marshal(rich)
	require.NoError(t, err)

	once, err := Adapt(raw, DefaultStartingCapital)
	require.NoError(t, err)
	assert.Equal(t, rich, once)

	// Idempotence: adapting the adapter's own output changes nothing
	rawAgain, err := json.Marshal(once)
	require.NoError(t, err)
	twice, err := Adapt(rawAgain, DefaultStartingCapital)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestAdapt_UnrecognizedShapeReturnsNil(t *testing.T) {
	report, err := Adapt(json.RawMessage(`{"message": "nothing here"}`), DefaultStartingCapital)
	require.NoError(t, err)
	assert.Nil(t, report)

	report, err = Adapt(nil, DefaultStartingCapital)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestAdapt_MalformedJSON(t *testing.T) {
	_, err := Adapt(json.RawMessage(`{not json`), DefaultStartingCapital)
	assert.Error(t, err)
}

func TestParseWinRate(t *testing.T) {
	assert.InDelta(t, 0.552, parseWinRate("55.2%"), 1e-9)
	assert.InDelta(t, 1.0, parseWinRate("100%"), 1e-9)
	assert.InDelta(t, 0.33, parseWinRate(" 33 % "), 1e-9)
	assert.Zero(t, parseWinRate("garbage"))
}
