package walletapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimtoken/go-dashboard/pkg/walletapi/server"
)

func newBackedClient(t *testing.T) *HTTPClient {
	t.Helper()
	backend := httptest.NewServer(server.New(server.Config{}).Routes())
	t.Cleanup(backend.Close)
	client, err := NewHTTPClient(HTTPConfig{BaseURL: backend.URL})
	require.NoError(t, err)
	return client
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base url")
}

func TestFetchPortfolioSummary(t *testing.T) {
	client := newBackedClient(t)

	summary, err := client.FetchPortfolioSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 20199.0, summary.TotalValue)
	assert.Equal(t, 4, summary.AssetCount)
	assert.Equal(t, "USD", summary.Currency)
}

func TestFetchAssets(t *testing.T) {
	client := newBackedClient(t)

	assets, err := client.FetchAssets(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, assets, 4)
	assert.Equal(t, "BTC", assets[0].Symbol)
	assert.Equal(t, 11820.50, assets[0].Value)
}

func TestFetchTransactionsHonorsLimit(t *testing.T) {
	client := newBackedClient(t)

	records, err := client.FetchTransactions(context.Background(), "u1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "tx-1007", records[0].ID)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestFetchTransactionsDefaultLimit(t *testing.T) {
	client := newBackedClient(t)

	records, err := client.FetchTransactions(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestFetchMarket(t *testing.T) {
	client := newBackedClient(t)

	quotes, err := client.FetchMarket(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 5)
	assert.Equal(t, "BTC", quotes[0].Symbol)
}

func TestFetchFinancialMood(t *testing.T) {
	client := newBackedClient(t)

	mood, err := client.FetchFinancialMood(context.Background(), "u1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mood.Score, 5)
	assert.LessOrEqual(t, mood.Score, 95)
	assert.Len(t, mood.Factors, 2)
}

func TestFetchPortfolioHistory(t *testing.T) {
	client := newBackedClient(t)

	points, err := client.FetchPortfolioHistory(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.True(t, points[0].Timestamp.Before(points[6].Timestamp))
}

func TestRemoteErrorSurfacesStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(backend.Close)
	client, err := NewHTTPClient(HTTPConfig{BaseURL: backend.URL})
	require.NoError(t, err)

	_, err = client.FetchMarket(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote error 503")
}

func TestAPIKeySentAsBearer(t *testing.T) {
	var got string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quotes":[]}`))
	}))
	t.Cleanup(backend.Close)
	client, err := NewHTTPClient(HTTPConfig{BaseURL: backend.URL, APIKey: "secret"})
	require.NoError(t, err)

	_, err = client.FetchMarket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", got)
}
