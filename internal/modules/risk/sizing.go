// Package risk implements the position sizing calculator.
package risk

import "math"

// ConcentrationLimit is the fraction of account size a single position may
// reach before the concentration warning trips.
const ConcentrationLimit = 0.20

// SizingInput is the calculator's input state. StopLossAmount and EntryPrice
// are optional: the UI recomputes on every keystroke, so either may still be
// blank.
type SizingInput struct {
	AccountSize    float64  `json:"account_size"`
	RiskPercentage float64  `json:"risk_percentage"`
	StopLossAmount *float64 `json:"stop_loss_amount,omitempty"`
	EntryPrice     *float64 `json:"entry_price,omitempty"`
}

// SizingResult is the derived output. All fields are recomputed together
// from a single input snapshot; there is no partial state.
type SizingResult struct {
	RiskAmount           float64 `json:"risk_amount"`
	MaxShares            int     `json:"max_shares"`
	PositionValue        float64 `json:"position_value"`
	ConcentrationWarning bool    `json:"concentration_warning"`
}

// Calculate derives the share count and concentration flag from the inputs.
//
// Shares are floored, never rounded: under-sizing is the deliberate bias.
// Non-positive account size or risk percentage clamps the risk amount to
// zero rather than propagating negative share counts.
func Calculate(in SizingInput) SizingResult {
	if in.StopLossAmount == nil || *in.StopLossAmount <= 0 {
		return SizingResult{}
	}

	riskAmount := in.AccountSize * in.RiskPercentage / 100
	if riskAmount < 0 {
		riskAmount = 0
	}

	maxShares := int(math.Floor(riskAmount / *in.StopLossAmount))

	result := SizingResult{
		RiskAmount: riskAmount,
		MaxShares:  maxShares,
	}

	if in.EntryPrice != nil {
		result.PositionValue = float64(maxShares) * *in.EntryPrice
		result.ConcentrationWarning = maxShares > 0 &&
			result.PositionValue > in.AccountSize*ConcentrationLimit
	}

	return result
}
