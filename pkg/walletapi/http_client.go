// Package walletapi talks to the wallet backend's REST API and adapts its
// responses onto the dashboard repository interfaces.
package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	dashboard "github.com/rimtoken/go-dashboard/components/dashboard"
)

// HTTPConfig configures the HTTP wallet client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient calls the wallet backend REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for a live wallet backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("walletapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchPortfolioSummary implements dashboard.PortfolioRepository.
func (c *HTTPClient) FetchPortfolioSummary(ctx context.Context, userID string) (dashboard.PortfolioSummary, error) {
	var resp portfolioResponse
	path := "/api/portfolio/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return dashboard.PortfolioSummary{}, err
	}
	return resp.toSummary(), nil
}

// FetchAssets implements dashboard.AssetRepository.
func (c *HTTPClient) FetchAssets(ctx context.Context, userID string) ([]dashboard.WalletAsset, error) {
	var resp assetsResponse
	path := "/api/portfolio/" + url.PathEscape(userID) + "/assets"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toAssets(), nil
}

// FetchTransactions implements dashboard.TransactionRepository.
func (c *HTTPClient) FetchTransactions(ctx context.Context, userID string, limit int) ([]dashboard.TransactionRecord, error) {
	var resp transactionsResponse
	path := "/api/transactions/" + url.PathEscape(userID)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toRecords()
}

// FetchMarket implements dashboard.MarketRepository.
func (c *HTTPClient) FetchMarket(ctx context.Context) ([]dashboard.MarketQuote, error) {
	var resp marketResponse
	if err := c.do(ctx, http.MethodGet, "/api/market", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toQuotes(), nil
}

// FetchFinancialMood implements dashboard.MoodRepository.
func (c *HTTPClient) FetchFinancialMood(ctx context.Context, userID string) (dashboard.FinancialMood, error) {
	var resp moodResponse
	path := "/api/portfolio/" + url.PathEscape(userID) + "/financial-mood"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return dashboard.FinancialMood{}, err
	}
	return resp.toMood(), nil
}

// FetchPortfolioHistory implements dashboard.PortfolioHistoryRepository.
func (c *HTTPClient) FetchPortfolioHistory(ctx context.Context, userID string, days int) ([]dashboard.PortfolioHistoryPoint, error) {
	var resp historyResponse
	path := "/api/portfolio/" + url.PathEscape(userID) + "/history"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPoints()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("walletapi: encode payload: %w", err)
		}
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("walletapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("walletapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("walletapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("walletapi: decode response: %w", err)
	}
	return nil
}

type portfolioResponse struct {
	TotalValue       float64 `json:"total_value"`
	Change24h        float64 `json:"change_24h"`
	ChangePercent24h float64 `json:"change_percent_24h"`
	AssetCount       int     `json:"asset_count"`
	Currency         string  `json:"currency"`
}

func (r portfolioResponse) toSummary() dashboard.PortfolioSummary {
	return dashboard.PortfolioSummary{
		TotalValue:       r.TotalValue,
		Change24h:        r.Change24h,
		ChangePercent24h: r.ChangePercent24h,
		AssetCount:       r.AssetCount,
		Currency:         r.Currency,
	}
}

type assetPayload struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Value            float64 `json:"value"`
	ChangePercent24h float64 `json:"change_percent_24h"`
}

type assetsResponse struct {
	Assets []assetPayload `json:"assets"`
}

func (r assetsResponse) toAssets() []dashboard.WalletAsset {
	assets := make([]dashboard.WalletAsset, len(r.Assets))
	for i, asset := range r.Assets {
		assets[i] = dashboard.WalletAsset{
			Symbol:           asset.Symbol,
			Name:             asset.Name,
			Amount:           asset.Amount,
			Value:            asset.Value,
			ChangePercent24h: asset.ChangePercent24h,
		}
	}
	return assets
}

type transactionPayload struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Symbol    string  `json:"symbol"`
	Amount    float64 `json:"amount"`
	Value     float64 `json:"value"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
}

type transactionsResponse struct {
	Transactions []transactionPayload `json:"transactions"`
}

func (r transactionsResponse) toRecords() ([]dashboard.TransactionRecord, error) {
	records := make([]dashboard.TransactionRecord, len(r.Transactions))
	for i, tx := range r.Transactions {
		ts, err := time.Parse(time.RFC3339, tx.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("walletapi: parse transaction timestamp %q: %w", tx.Timestamp, err)
		}
		records[i] = dashboard.TransactionRecord{
			ID:        tx.ID,
			Kind:      tx.Kind,
			Symbol:    tx.Symbol,
			Amount:    tx.Amount,
			Value:     tx.Value,
			Status:    tx.Status,
			Timestamp: ts,
		}
	}
	return records, nil
}

type marketQuotePayload struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	ChangePercent24h float64 `json:"change_percent_24h"`
	MarketCap        float64 `json:"market_cap"`
}

type marketResponse struct {
	Quotes []marketQuotePayload `json:"quotes"`
}

func (r marketResponse) toQuotes() []dashboard.MarketQuote {
	quotes := make([]dashboard.MarketQuote, len(r.Quotes))
	for i, quote := range r.Quotes {
		quotes[i] = dashboard.MarketQuote{
			Symbol:           quote.Symbol,
			Name:             quote.Name,
			Price:            quote.Price,
			ChangePercent24h: quote.ChangePercent24h,
			MarketCap:        quote.MarketCap,
		}
	}
	return quotes
}

type moodFactorPayload struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
}

type moodResponse struct {
	Score   int                 `json:"score"`
	Factors []moodFactorPayload `json:"factors"`
}

func (r moodResponse) toMood() dashboard.FinancialMood {
	factors := make([]dashboard.MoodFactor, len(r.Factors))
	for i, factor := range r.Factors {
		factors[i] = dashboard.MoodFactor{
			Type:        factor.Type,
			Description: factor.Description,
			Impact:      factor.Impact,
		}
	}
	return dashboard.FinancialMood{Score: r.Score, Factors: factors}
}

type historyPointPayload struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

type historyResponse struct {
	Points []historyPointPayload `json:"points"`
}

func (r historyResponse) toPoints() ([]dashboard.PortfolioHistoryPoint, error) {
	points := make([]dashboard.PortfolioHistoryPoint, len(r.Points))
	for i, point := range r.Points {
		ts, err := time.Parse(time.RFC3339, point.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("walletapi: parse history timestamp %q: %w", point.Timestamp, err)
		}
		points[i] = dashboard.PortfolioHistoryPoint{Timestamp: ts, Value: point.Value}
	}
	return points, nil
}

var (
	_ dashboard.PortfolioRepository        = (*HTTPClient)(nil)
	_ dashboard.AssetRepository            = (*HTTPClient)(nil)
	_ dashboard.TransactionRepository      = (*HTTPClient)(nil)
	_ dashboard.MarketRepository           = (*HTTPClient)(nil)
	_ dashboard.MoodRepository             = (*HTTPClient)(nil)
	_ dashboard.PortfolioHistoryRepository = (*HTTPClient)(nil)
)
