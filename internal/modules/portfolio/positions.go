// Package portfolio parses pasted holdings and proxies the backend's
// correlation/diversification report.
package portfolio

import (
	"strconv"
	"strings"

	"github.com/dkoutsos/tradescope/internal/domain"
)

// ErrNoPositions is the user-facing message for an empty or unparseable
// positions textarea. The backend is not called in that case.
const ErrNoPositions = "no valid positions found"

// ParsePositions parses the pasted positions text, one holding per line in
// the form "SYMBOL QTY PRICE". Blank lines and lines that fail to parse are
// skipped; quantity and price must both be positive.
func ParsePositions(text string) []domain.Position {
	var positions []domain.Position

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}

		qty, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || qty <= 0 {
			continue
		}
		price, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || price <= 0 {
			continue
		}

		positions = append(positions, domain.Position{
			Symbol:   strings.ToUpper(fields[0]),
			Quantity: qty,
			Price:    price,
		})
	}

	return positions
}
