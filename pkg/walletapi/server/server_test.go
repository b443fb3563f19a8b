package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, s *Server, path string) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	s.Routes().ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestPortfolioTotalsSeededWallet(t *testing.T) {
	s := New(Config{})
	payload := getJSON(t, s, "/api/portfolio/u1")
	assert.Equal(t, 20199.0, payload["total_value"])
	assert.Equal(t, float64(4), payload["asset_count"])
	assert.Equal(t, "USD", payload["currency"])
}

func TestWalletSeededOncePerUser(t *testing.T) {
	s := New(Config{})
	first := s.walletFor("u1")
	second := s.walletFor("u1")
	assert.Same(t, first, second)
	assert.NotSame(t, first, s.walletFor("u2"))
}

func TestHistoryClampsDays(t *testing.T) {
	s := New(Config{})

	payload := getJSON(t, s, "/api/portfolio/u1/history?days=500")
	assert.Len(t, payload["points"], 90)

	payload = getJSON(t, s, "/api/portfolio/u1/history?days=-3")
	assert.Len(t, payload["points"], 1)

	payload = getJSON(t, s, "/api/portfolio/u1/history")
	assert.Len(t, payload["points"], 30)
}

func TestTransactionsLimit(t *testing.T) {
	s := New(Config{})

	payload := getJSON(t, s, "/api/transactions/u1?limit=2")
	require.Len(t, payload["transactions"], 2)

	payload = getJSON(t, s, "/api/transactions/u1")
	assert.Len(t, payload["transactions"], 5)

	payload = getJSON(t, s, "/api/transactions/u1?limit=abc")
	assert.Len(t, payload["transactions"], 5)
}

func TestFinancialMoodScoreClamped(t *testing.T) {
	s := New(Config{})
	payload := getJSON(t, s, "/api/portfolio/u1/financial-mood")
	score := payload["score"].(float64)
	assert.GreaterOrEqual(t, score, float64(5))
	assert.LessOrEqual(t, score, float64(95))
	assert.Len(t, payload["factors"], 2)
}
