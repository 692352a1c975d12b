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
	"github.com/stretchr/testify/require"

	"github.com/dkoutsos/tradescope/internal/modules/feedback"
)

type fakeBackend struct {
	payload json.RawMessage
	err     error
}

func (f *fakeBackend) SendFeedback(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
	return f.payload, f.err
}

func testRouter(backend *fakeBackend) chi.Router {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	service := feedback.NewService(backend, log)
	handler := NewHandler(service, log)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandleSubmit(t *testing.T) {
	router := testRouter(&fakeBackend{payload: json.RawMessage(`{"status": "received"}`)})

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(`{"message": "love the heatmap"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data feedback.Receipt `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.Data.ID)
	assert.JSONEq(t, `{"status": "received"}`, string(response.Data.Result))
}

func TestHandleSubmit_BadBody(t *testing.T) {
	router := testRouter(&fakeBackend{})

	for _, body := range []string{"", "not json"} {
		req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestHandleSubmit_BackendDown(t *testing.T) {
	router := testRouter(&fakeBackend{err: errors.New("connection refused")})

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(`{"message": "hi"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
