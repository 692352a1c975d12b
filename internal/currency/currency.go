// Package currency provides display helpers for monetary amounts.
//
// London-listed tickers ("VOD.L") are quoted in pence (GBX), so pound amounts
// are divided by 100 before formatting. Everything else is treated as dollars.
package currency

import (
	"strconv"
	"strings"
)

const (
	// Pound is the symbol for GBX-quoted (London) tickers.
	Pound = "£"
	// Dollar is the default symbol for everything else.
	Dollar = "$"
)

// Symbol returns the display currency symbol for a ticker.
func Symbol(ticker string) string {
	if strings.HasSuffix(strings.ToUpper(ticker), ".L") {
		return Pound
	}
	return Dollar
}

// Format renders an amount with thousands separators and two decimals.
// Pound amounts arrive in pence and are converted to pounds first:
// Format(123456.7, "£") == "£1,234.57".
func Format(amount float64, symbol string) string {
	if symbol == Pound {
		amount /= 100
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart := s, "00"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	return sign + symbol + groupThousands(intPart) + "." + fracPart
}

// FormatTicker formats an amount in the currency implied by the ticker.
func FormatTicker(amount float64, ticker string) string {
	return Format(amount, Symbol(ticker))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(n + n/3)
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
