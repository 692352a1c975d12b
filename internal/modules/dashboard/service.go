// Package dashboard turns the backend's portfolio summary into the
// chart-ready view the overview page renders.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/clientdata"
	"github.com/dkoutsos/tradescope/internal/currency"
	"github.com/dkoutsos/tradescope/internal/domain"
)

const cacheKey = "summary"

// BackendClient is the slice of the analytics backend this module needs.
type BackendClient interface {
	Dashboard(ctx context.Context) (json.RawMessage, error)
}

// Cache is the subset of the client data repository the service uses.
// A nil cache disables caching entirely.
type Cache interface {
	GetIfFresh(table, key string, dest interface{}) (bool, error)
	Store(table, key string, data interface{}, ttl time.Duration) error
}

// summaryPayload is the loose shape of the backend's GET /dashboard body.
// Missing fields decode to zero values; unknown fields are ignored.
type summaryPayload struct {
	TotalValue float64              `json:"total_value"`
	TotalPnL   float64              `json:"total_pnl"`
	DayPnL     float64              `json:"day_pnl"`
	History    []domain.SeriesPoint `json:"history"`
	Positions  []positionPayload    `json:"positions"`
}

type positionPayload struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
	PnL      float64 `json:"pnl"`
}

// PositionView is one holdings row with display-ready currency strings.
type PositionView struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    string  `json:"price"`
	Value    string  `json:"value"`
	PnL      string  `json:"pnl"`
	PnLRaw   float64 `json:"pnl_raw"`
}

// View is the dashboard view model.
type View struct {
	TotalValue string               `json:"total_value"`
	TotalPnL   string               `json:"total_pnl"`
	DayPnL     string               `json:"day_pnl"`
	Sparkline  []domain.SeriesPoint `json:"sparkline"`
	Positions  []PositionView       `json:"positions"`
}

// Service builds the dashboard view from the backend summary, serving
// from the cache when fresh.
type Service struct {
	client BackendClient
	cache  Cache
	log    zerolog.Logger
}

// NewService creates a new dashboard service. cache may be nil.
func NewService(client BackendClient, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "dashboard").Logger(),
	}
}

// Summary returns the chart-ready dashboard view.
func (s *Service) Summary(ctx context.Context) (*View, error) {
	raw, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return buildView(raw), nil
}

func (s *Service) fetch(ctx context.Context) (json.RawMessage, error) {
	if s.cache != nil {
		var cached []byte
		found, err := s.cache.GetIfFresh("dashboard", cacheKey, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("Dashboard cache read failed")
		} else if found {
			return cached, nil
		}
	}

	raw, err := s.client.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard summary: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Store("dashboard", cacheKey, []byte(raw), clientdata.TTLDashboard); err != nil {
			s.log.Warn().Err(err).Msg("Dashboard cache write failed")
		}
	}

	return raw, nil
}

// buildView reshapes the raw summary into display form. Malformed bodies
// degrade to an empty view rather than failing the page.
func buildView(raw json.RawMessage) *View {
	var payload summaryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &View{Sparkline: []domain.SeriesPoint{}, Positions: []PositionView{}}
	}

	view := &View{
		TotalValue: currency.Format(payload.TotalValue, "$"),
		TotalPnL:   currency.Format(payload.TotalPnL, "$"),
		DayPnL:     currency.Format(payload.DayPnL, "$"),
		Sparkline:  domain.CollapseDuplicates(payload.History),
		Positions:  make([]PositionView, 0, len(payload.Positions)),
	}

	for _, p := range payload.Positions {
		sym := currency.Symbol(p.Symbol)
		view.Positions = append(view.Positions, PositionView{
			Symbol:   p.Symbol,
			Quantity: p.Quantity,
			Price:    currency.Format(p.Price, sym),
			Value:    currency.Format(p.Value, sym),
			PnL:      currency.Format(p.PnL, sym),
			PnLRaw:   p.PnL,
		})
	}

	return view
}
