// Package analytics is the HTTP client for the external analytics backend.
// Bodies are treated as opaque JSON and reshaped by the module services.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/domain"
	"github.com/dkoutsos/tradescope/internal/modules/backtest"
)

const requestTimeout = 30 * time.Second

// Client talks to the analytics backend over REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new analytics backend client.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log.With().Str("component", "analytics-client").Logger(),
	}
}

// Dashboard fetches the portfolio summary (GET /dashboard).
func (c *Client) Dashboard(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/dashboard")
}

// Analyze submits a trade audit (POST /analyze).
func (c *Client) Analyze(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/analyze", body)
}

// RunBacktest runs a single-ticker backtest (POST /backtest/run). The
// response is either rich or simple shaped; the backtest adapter
// normalizes it.
func (c *Client) RunBacktest(ctx context.Context, req backtest.RunRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backtest request: %w", err)
	}
	return c.post(ctx, "/backtest/run", body)
}

// CheckTicker runs the quick single-ticker check (GET /screen/check).
func (c *Client) CheckTicker(ctx context.Context, ticker, strategy string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	if strategy != "" {
		q.Set("strategy", strategy)
	}
	return c.get(ctx, "/screen/check?"+q.Encode())
}

// GetScreen fetches a named screener (GET /screen).
func (c *Client) GetScreen(ctx context.Context, screen string) (json.RawMessage, error) {
	q := url.Values{}
	if screen != "" {
		q.Set("name", screen)
	}
	path := "/screen"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.get(ctx, path)
}

// RunScreen runs a custom screener (POST /screen).
func (c *Client) RunScreen(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/screen", body)
}

// ListJournal fetches all journal entries (GET /journal).
func (c *Client) ListJournal(ctx context.Context) ([]domain.JournalEntry, error) {
	raw, err := c.get(ctx, "/journal")
	if err != nil {
		return nil, err
	}

	// The backend returns either a bare array or {"entries": [...]}.
	var entries []domain.JournalEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		Entries []domain.JournalEntry `json:"entries"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected journal response shape: %w", err)
	}
	return wrapped.Entries, nil
}

// AddJournalEntry creates a journal entry (POST /journal/add).
func (c *Client) AddJournalEntry(ctx context.Context, entry json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/journal/add", entry)
}

// DeleteJournalEntry removes a journal entry (DELETE /journal/delete/{id}).
func (c *Client) DeleteJournalEntry(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/journal/delete/%d", id), nil)
	return err
}

// AnalyzeJournal runs the backend's sentiment pass over the journal
// (POST /journal/analyze).
func (c *Client) AnalyzeJournal(ctx context.Context) (json.RawMessage, error) {
	return c.post(ctx, "/journal/analyze", nil)
}

// AnalyzePortfolio fetches the correlation/diversification report
// (POST /analyze/portfolio).
func (c *Client) AnalyzePortfolio(ctx context.Context, positions []domain.Position) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]interface{}{"positions": positions})
	if err != nil {
		return nil, fmt.Errorf("failed to encode portfolio request: %w", err)
	}
	return c.post(ctx, "/analyze/portfolio", body)
}

// SendFeedback forwards a feedback submission (POST /feedback).
func (c *Client) SendFeedback(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "/feedback", payload)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body json.RawMessage) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(respBody)
		if len(bodyStr) > 500 {
			bodyStr = bodyStr[:500] + "..."
		}
		c.log.Error().
			Int("status_code", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("response_body", bodyStr).
			Msg("Backend returned non-2xx status")
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, resp.Status)
	}

	return respBody, nil
}
