package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/clientdata"
	"github.com/dkoutsos/tradescope/internal/currency"
	"github.com/dkoutsos/tradescope/internal/domain"
)

// BackendClient is the slice of the analytics backend this module needs.
type BackendClient interface {
	AnalyzePortfolio(ctx context.Context, positions []domain.Position) (json.RawMessage, error)
}

// Cache is the subset of the client data repository the service uses.
// A nil cache disables caching entirely.
type Cache interface {
	GetIfFresh(table, key string, dest interface{}) (bool, error)
	Store(table, key string, data interface{}, ttl time.Duration) error
}

// ErrNoValidPositions signals that the pasted text contained nothing
// analyzable; handlers render it as an inline message, not a failure.
var ErrNoValidPositions = errors.New(ErrNoPositions)

// Report is the portfolio risk view model.
type Report struct {
	Positions  []PositionSummary `json:"positions"`
	TotalValue string            `json:"total_value"`
	Analysis   json.RawMessage   `json:"analysis"`
}

// PositionSummary is one parsed holding with its formatted market value.
type PositionSummary struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
	Value  string  `json:"value"`
}

// Service parses pasted positions and fetches the backend correlation
// report for them.
type Service struct {
	client BackendClient
	cache  Cache
	log    zerolog.Logger
}

// NewService creates a new portfolio service. cache may be nil.
func NewService(client BackendClient, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "portfolio").Logger(),
	}
}

// Analyze parses the pasted positions text and returns the risk report.
// Empty or unparseable input returns ErrNoValidPositions without touching
// the backend.
func (s *Service) Analyze(ctx context.Context, text string) (*Report, error) {
	positions := ParsePositions(text)
	if len(positions) == 0 {
		return nil, ErrNoValidPositions
	}

	key := cacheKeyFor(positions)
	if s.cache != nil {
		var cached Report
		found, err := s.cache.GetIfFresh("portfolio_reports", key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("Portfolio cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	analysis, err := s.client.AnalyzePortfolio(ctx, positions)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze portfolio: %w", err)
	}

	report := buildReport(positions, analysis)

	if s.cache != nil {
		if err := s.cache.Store("portfolio_reports", key, report, clientdata.TTLPortfolioReport); err != nil {
			s.log.Warn().Err(err).Msg("Portfolio cache write failed")
		}
	}

	return report, nil
}

func buildReport(positions []domain.Position, analysis json.RawMessage) *Report {
	total := 0.0
	for _, p := range positions {
		total += p.Quantity * p.Price
	}

	report := &Report{
		Positions:  make([]PositionSummary, 0, len(positions)),
		TotalValue: currency.Format(total, "$"),
		Analysis:   analysis,
	}

	for _, p := range positions {
		value := p.Quantity * p.Price
		weight := 0.0
		if total > 0 {
			weight = value / total
		}
		report.Positions = append(report.Positions, PositionSummary{
			Symbol: p.Symbol,
			Weight: weight,
			Value:  currency.Format(value, currency.Symbol(p.Symbol)),
		})
	}

	return report
}

// cacheKeyFor derives a stable key from the parsed holdings so the same
// pasted portfolio reuses its cached report.
func cacheKeyFor(positions []domain.Position) string {
	parts := make([]string, 0, len(positions))
	for _, p := range positions {
		parts = append(parts, fmt.Sprintf("%s:%g:%g", p.Symbol, p.Quantity, p.Price))
	}
	return strings.Join(parts, "|")
}
