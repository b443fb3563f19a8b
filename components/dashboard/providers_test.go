package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioSummaryProvider(t *testing.T) {
	provider := NewPortfolioSummaryProvider(DemoWalletRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 20199.0, data["total_value"])
	assert.Equal(t, 4, data["asset_count"])
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, "up", data["trend"])
}

func TestPortfolioSummaryProviderTrendDown(t *testing.T) {
	repo := stubPortfolioRepo{summary: PortfolioSummary{TotalValue: 900, ChangePercent24h: -3.2}}
	provider := NewPortfolioSummaryProvider(repo)
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "down", data["trend"])
}

func TestAssetListProvider(t *testing.T) {
	provider := NewAssetListProvider(DemoWalletRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.NoError(t, err)

	assets, ok := data["assets"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, assets, 4)
	assert.Equal(t, "BTC", assets[0]["symbol"])
}

func TestTransactionHistoryProviderHonorsLimit(t *testing.T) {
	provider := NewTransactionHistoryProvider(DemoWalletRepository{}, 2)
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.NoError(t, err)

	transactions, ok := data["transactions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, transactions, 2)
	assert.Equal(t, "tx-1007", transactions[0]["id"])
	assert.Equal(t, 2, data["limit"])
}

func TestMarketOverviewProvider(t *testing.T) {
	provider := NewMarketOverviewProvider(DemoWalletRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.NoError(t, err)

	quotes, ok := data["quotes"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, quotes, 5)
}

func TestProviderPropagatesRepositoryError(t *testing.T) {
	repo := stubPortfolioRepo{err: errors.New("backend unavailable")}
	provider := NewPortfolioSummaryProvider(repo)
	_, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.Error(t, err)
}

func TestMoodLevelThresholds(t *testing.T) {
	cases := map[int]string{
		95: MoodExcellent,
		80: MoodExcellent,
		79: MoodGood,
		60: MoodGood,
		59: MoodNeutral,
		40: MoodNeutral,
		39: MoodConcerning,
		20: MoodConcerning,
		19: MoodCritical,
		0:  MoodCritical,
	}
	for score, want := range cases {
		assert.Equalf(t, want, MoodLevelFor(score), "score %d", score)
	}
}

func TestMoodMessageLocalization(t *testing.T) {
	assert.Equal(t, "حالتك المالية ممتازة!", MoodMessageFor(85, "ar"))
	assert.Equal(t, "Your finances are excellent!", MoodMessageFor(85, "en"))
	assert.Equal(t, "حالتك المالية حرجة!", MoodMessageFor(5, ""))
}

func TestFinancialMoodProviderDerivesLevel(t *testing.T) {
	provider := NewFinancialMoodProvider(DemoWalletRepository{})
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1", Locale: "ar"})
	require.NoError(t, err)

	assert.Equal(t, 72, data["score"])
	assert.Equal(t, MoodGood, data["level"])
	assert.Equal(t, "😊", data["emoji"])
	assert.Equal(t, "حالتك المالية جيدة", data["message"])
	factors, ok := data["factors"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, factors, 3)
}

func TestUnderDevelopmentProviders(t *testing.T) {
	reg := NewRegistry()
	for _, widgetType := range []WidgetType{TypePriceAlerts, TypeNewsFeed} {
		provider, ok := reg.Provider(widgetType)
		require.Truef(t, ok, "provider for %s", widgetType)
		data, err := provider.Fetch(context.Background(), WidgetContext{Locale: "ar"})
		require.NoError(t, err)
		assert.Equal(t, "هذه الميزة قيد التطوير", data["message"])
		assert.Equal(t, false, data["available"])
	}
}

func TestPortfolioChartProviderRendersHTML(t *testing.T) {
	provider := NewPortfolioChartProvider(DemoWalletRepository{}, NewChartCache(time.Minute), []PortfolioChartOption{
		WithChartWindow(7),
	})
	data, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1", Locale: "en"})
	require.NoError(t, err)

	html, ok := data["chart_html"].(string)
	require.True(t, ok)
	assert.True(t, strings.Contains(html, "echarts"))
	assert.Equal(t, "line", data["chart_type"])
	assert.Equal(t, "Portfolio Chart", data["title"])
	assert.Equal(t, 7, data["days"])
	values, ok := data["values"].([]float64)
	require.True(t, ok)
	assert.Len(t, values, 7)
}

func TestPortfolioChartProviderCachesRender(t *testing.T) {
	repo := &countingHistoryRepo{}
	cache := NewChartCache(time.Minute)
	provider := NewPortfolioChartProvider(repo, cache, []PortfolioChartOption{WithChartWindow(3)})

	meta := WidgetContext{UserID: "u1"}
	_, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	_, err = provider.Fetch(context.Background(), meta)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.calls, "repository is consulted every fetch")
}

func TestPortfolioChartProviderEmptySeries(t *testing.T) {
	provider := NewPortfolioChartProvider(emptyHistoryRepo{}, NewChartCache(time.Minute), nil)
	_, err := provider.Fetch(context.Background(), WidgetContext{UserID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

type stubPortfolioRepo struct {
	summary PortfolioSummary
	err     error
}

func (s stubPortfolioRepo) FetchPortfolioSummary(context.Context, string) (PortfolioSummary, error) {
	return s.summary, s.err
}

type countingHistoryRepo struct {
	calls int
}

func (r *countingHistoryRepo) FetchPortfolioHistory(_ context.Context, _ string, days int) ([]PortfolioHistoryPoint, error) {
	r.calls++
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	points := make([]PortfolioHistoryPoint, days)
	for i := range points {
		points[i] = PortfolioHistoryPoint{Timestamp: base.AddDate(0, 0, i), Value: 1000 + float64(i)}
	}
	return points, nil
}

type emptyHistoryRepo struct{}

func (emptyHistoryRepo) FetchPortfolioHistory(context.Context, string, int) ([]PortfolioHistoryPoint, error) {
	return nil, nil
}
