package backtest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/domain"
)

// BackendClient is the slice of the analytics backend this module needs.
type BackendClient interface {
	RunBacktest(ctx context.Context, req RunRequest) (json.RawMessage, error)
	CheckTicker(ctx context.Context, ticker, strategy string) (json.RawMessage, error)
	Analyze(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
}

// RunRequest is a single-ticker backtest request forwarded to the backend.
type RunRequest struct {
	Ticker    string  `json:"ticker"`
	Strategy  string  `json:"strategy"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
	RiskPct   float64 `json:"risk_pct,omitempty"`
}

// ResultView is the chart-ready backtest view model: the canonical report
// plus derived series with chart invariants (sorted, duplicate dates
// collapsed) already applied.
type ResultView struct {
	Report        *Report              `json:"report"`
	EquityCurve   []domain.SeriesPoint `json:"equity_curve"`
	DrawdownCurve []domain.SeriesPoint `json:"drawdown_curve"`
}

// Service runs backtests through the backend and adapts the results.
type Service struct {
	client          BackendClient
	startingCapital float64
	log             zerolog.Logger
}

// NewService creates a new backtest service.
func NewService(client BackendClient, startingCapital float64, log zerolog.Logger) *Service {
	if startingCapital <= 0 {
		startingCapital = DefaultStartingCapital
	}
	return &Service{
		client:          client,
		startingCapital: startingCapital,
		log:             log.With().Str("service", "backtest").Logger(),
	}
}

// Run executes a backtest and returns the normalized view model.
// A nil view with nil error means the backend produced no usable results.
func (s *Service) Run(ctx context.Context, req RunRequest) (*ResultView, error) {
	raw, err := s.client.RunBacktest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("backtest run failed: %w", err)
	}
	return s.view(raw)
}

// Check runs the lightweight single-ticker check endpoint, which answers in
// either response shape depending on backend version.
func (s *Service) Check(ctx context.Context, ticker, strategy string) (*ResultView, error) {
	raw, err := s.client.CheckTicker(ctx, ticker, strategy)
	if err != nil {
		return nil, fmt.Errorf("ticker check failed: %w", err)
	}
	return s.view(raw)
}

// Audit forwards an uploaded trade history to the backend audit endpoint and
// adapts whatever shape comes back.
func (s *Service) Audit(ctx context.Context, body json.RawMessage) (*ResultView, error) {
	raw, err := s.client.Analyze(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("trade audit failed: %w", err)
	}
	return s.view(raw)
}

func (s *Service) view(raw json.RawMessage) (*ResultView, error) {
	report, err := Adapt(raw, s.startingCapital)
	if err != nil {
		return nil, fmt.Errorf("failed to adapt backtest payload: %w", err)
	}
	if report == nil {
		s.log.Debug().Msg("Backtest payload had no results")
		return nil, nil
	}

	equity := domain.CollapseDuplicates(report.PortfolioCurve)
	return &ResultView{
		Report:        report,
		EquityCurve:   equity,
		DrawdownCurve: Drawdown(equity, s.startingCapital),
	}, nil
}
