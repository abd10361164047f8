package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/scoring"
)

func TestGetVariables(t *testing.T) {
	handler := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/variables", nil)
	rec := httptest.NewRecorder()

	handler.GetVariables(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Variables []scoring.ScoringVariable `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Variables, 13)
	assert.Equal(t, "closeGame", body.Variables[0].ID)
}

func TestGetVariable(t *testing.T) {
	handler := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/variables/backToBack", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "backToBack"})
	rec := httptest.NewRecorder()

	handler.GetVariable(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var variable scoring.ScoringVariable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &variable))
	assert.Equal(t, "backToBack", variable.ID)
	assert.Equal(t, -4, variable.Points)
}

func TestGetVariable_Unknown(t *testing.T) {
	handler := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/variables/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()

	handler.GetVariable(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHistoryRange_Validation(t *testing.T) {
	handler := &Handler{}

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing dates", query: ""},
		{name: "bad start", query: "?start=notadate&end=2026-01-10"},
		{name: "end before start", query: "?start=2026-01-10&end=2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/history/range"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.GetHistoryRange(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()

	RecoveryMiddleware(panicking).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/slate/today", nil)
	rec := httptest.NewRecorder()

	CORSMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
