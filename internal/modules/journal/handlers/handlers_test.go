package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoutsos/tradescope/internal/domain"
	"github.com/dkoutsos/tradescope/internal/modules/journal"
)

type fakeBackend struct {
	entries   []domain.JournalEntry
	listErr   error
	deletedID int64
	added     bool
}

func (f *fakeBackend) ListJournal(_ context.Context) ([]domain.JournalEntry, error) {
	return f.entries, f.listErr
}

func (f *fakeBackend) AddJournalEntry(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
	f.added = true
	return json.RawMessage(`{"id": 42}`), nil
}

func (f *fakeBackend) DeleteJournalEntry(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeBackend) AnalyzeJournal(_ context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"sentiment": "neutral"}`), nil
}

func pnl(v float64) *float64 { return &v }

func testRouter(backend *fakeBackend) *chi.Mux {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	service := journal.NewService(backend, nil, logger)
	handler := NewHandler(service, logger)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestHandleList(t *testing.T) {
	backend := &fakeBackend{entries: []domain.JournalEntry{
		{ID: 1, Symbol: "AAPL", Emotions: []string{"Disciplined"}, PnL: pnl(100)},
	}}
	router := testRouter(backend)

	req := httptest.NewRequest("GET", "/journal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Count   int                    `json:"count"`
			Entries []domain.JournalEntry `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Data.Count)
	require.Len(t, response.Data.Entries, 1)
	assert.Equal(t, "AAPL", response.Data.Entries[0].Symbol)
}

func TestHandleList_BackendDown(t *testing.T) {
	router := testRouter(&fakeBackend{listErr: assert.AnError})

	req := httptest.NewRequest("GET", "/journal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Read views degrade instead of failing
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Nil(t, response["data"])
}

func TestHandleMood(t *testing.T) {
	backend := &fakeBackend{entries: []domain.JournalEntry{
		{Emotions: []string{"Disciplined"}, PnL: pnl(100)},
		{Emotions: []string{"Impulsive"}, PnL: pnl(-50)},
		{Emotions: []string{"Disciplined"}, PnL: pnl(50)},
	}}
	router := testRouter(backend)

	req := httptest.NewRequest("GET", "/journal/mood", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Mood map[string]float64 `json:"mood"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, map[string]float64{"Disciplined": 150, "Impulsive": -50}, response.Data.Mood)
}

func TestHandleCalendar(t *testing.T) {
	router := testRouter(&fakeBackend{})

	req := httptest.NewRequest("GET", "/journal/calendar", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			WindowDays int `json:"window_days"`
			Days       []struct {
				Status string `json:"status"`
			} `json:"days"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, journal.CalendarWindowDays, response.Data.WindowDays)
	assert.Len(t, response.Data.Days, journal.CalendarWindowDays)
}

func TestHandleDelete(t *testing.T) {
	backend := &fakeBackend{}
	router := testRouter(backend)

	req := httptest.NewRequest("DELETE", "/journal/delete/17", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(17), backend.deletedID)
}

func TestHandleDelete_BadID(t *testing.T) {
	router := testRouter(&fakeBackend{})

	req := httptest.NewRequest("DELETE", "/journal/delete/oops", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAdd(t *testing.T) {
	backend := &fakeBackend{}
	router := testRouter(backend)

	body := `{"symbol": "VOD.L", "pnl": 25, "emotions": ["Calm"]}`
	req := httptest.NewRequest("POST", "/journal/add", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, backend.added)
}
