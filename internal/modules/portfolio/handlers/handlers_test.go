package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dkoutsos/tradescope/internal/domain"
	"github.com/dkoutsos/tradescope/internal/modules/portfolio"
)

type fakeBackend struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (f *fakeBackend) AnalyzePortfolio(_ context.Context, _ []domain.Position) (json.RawMessage, error) {
	f.calls++
	return f.payload, f.err
}

func testRouter(backend *fakeBackend) chi.Router {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	service := portfolio.NewService(backend, nil, log)
	handler := NewHandler(service, log)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandleAnalyze(t *testing.T) {
	router := testRouter(&fakeBackend{payload: json.RawMessage(`{"diversification_score": 0.7}`)})

	body := `{"positions": "AAPL 10 100\nMSFT 5 200"}`
	req := httptest.NewRequest("POST", "/portfolio/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "diversification_score")
	assert.Contains(t, w.Body.String(), `"$2,000.00"`)
}

func TestHandleAnalyze_EmptyTextarea(t *testing.T) {
	backend := &fakeBackend{}
	router := testRouter(backend)

	req := httptest.NewRequest("POST", "/portfolio/analyze", strings.NewReader(`{"positions": ""}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "no valid positions found")
	assert.Equal(t, 0, backend.calls)
}

func TestHandleAnalyze_BadBody(t *testing.T) {
	router := testRouter(&fakeBackend{})

	req := httptest.NewRequest("POST", "/portfolio/analyze", strings.NewReader("{"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_BackendDown(t *testing.T) {
	router := testRouter(&fakeBackend{err: errors.New("connection refused")})

	req := httptest.NewRequest("POST", "/portfolio/analyze", strings.NewReader(`{"positions": "AAPL 10 100"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio analysis unavailable")
}
