package clientdata

import "time"

// TTL constants for cached backend responses.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// TTLDashboard keeps the portfolio summary snappy without hammering the
	// backend on every page load.
	TTLDashboard = time.Minute

	// TTLJournal is short: the journal changes whenever the user writes, and
	// writes invalidate the cache anyway.
	TTLJournal = 30 * time.Second

	// TTLScreener covers screener result sets, which the backend recomputes
	// on a daily candle close.
	TTLScreener = 5 * time.Minute

	// TTLPortfolioReport caches correlation reports, which are expensive on
	// the backend side and keyed by the exact positions submitted.
	TTLPortfolioReport = 10 * time.Minute
)
