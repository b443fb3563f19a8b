// Package server is an in-memory wallet backend serving the REST endpoints
// the dashboard's walletapi client consumes. It backs demos and integration
// tests; a production deployment points the client at the real backend
// instead.
package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Config configures the wallet server.
type Config struct {
	Logger *logrus.Logger
}

// Server holds the seeded wallet state.
type Server struct {
	log *logrus.Logger

	mu      sync.RWMutex
	wallets map[string]*walletState
}

type walletState struct {
	Assets       []Asset
	Transactions []Transaction
	Currency     string
}

// Asset is one holding in a wallet.
type Asset struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Value            float64 `json:"value"`
	ChangePercent24h float64 `json:"change_percent_24h"`
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Symbol    string    `json:"symbol"`
	Amount    float64   `json:"amount"`
	Value     float64   `json:"value"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"-"`
}

// New builds a server with an empty wallet map. Wallets are seeded lazily on
// first access so every user id resolves.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		log:     log,
		wallets: make(map[string]*walletState),
	}
}

// Routes mounts the REST API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)

	r.Get("/api/portfolio/{userID}", s.handlePortfolio)
	r.Get("/api/portfolio/{userID}/assets", s.handleAssets)
	r.Get("/api/portfolio/{userID}/history", s.handleHistory)
	r.Get("/api/portfolio/{userID}/financial-mood", s.handleFinancialMood)
	r.Get("/api/transactions/{userID}", s.handleTransactions)
	r.Get("/api/market", s.handleMarket)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Info("wallet api request")
	})
}

func (s *Server) walletFor(userID string) *walletState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wallet, ok := s.wallets[userID]; ok {
		return wallet
	}
	wallet := seedWallet()
	s.wallets[userID] = wallet
	return wallet
}

func seedWallet() *walletState {
	now := time.Now().UTC()
	return &walletState{
		Currency: "USD",
		Assets: []Asset{
			{Symbol: "BTC", Name: "Bitcoin", Amount: 0.1845, Value: 11820.50, ChangePercent24h: 3.1},
			{Symbol: "ETH", Name: "Ethereum", Amount: 1.42, Value: 4750.10, ChangePercent24h: 1.9},
			{Symbol: "SOL", Name: "Solana", Amount: 18.6, Value: 2678.40, ChangePercent24h: -0.8},
			{Symbol: "USDT", Name: "Tether", Amount: 950, Value: 950.00, ChangePercent24h: 0},
		},
		Transactions: []Transaction{
			{ID: "tx-1007", Kind: "buy", Symbol: "BTC", Amount: 0.012, Value: 768.90, Status: "completed", Timestamp: now.Add(-2 * time.Hour)},
			{ID: "tx-1006", Kind: "sell", Symbol: "SOL", Amount: 4.2, Value: 604.80, Status: "completed", Timestamp: now.Add(-26 * time.Hour)},
			{ID: "tx-1005", Kind: "receive", Symbol: "ETH", Amount: 0.25, Value: 836.25, Status: "completed", Timestamp: now.Add(-49 * time.Hour)},
			{ID: "tx-1004", Kind: "send", Symbol: "USDT", Amount: 120, Value: 120.00, Status: "completed", Timestamp: now.Add(-72 * time.Hour)},
			{ID: "tx-1003", Kind: "buy", Symbol: "ETH", Amount: 0.5, Value: 1672.50, Status: "completed", Timestamp: now.Add(-96 * time.Hour)},
		},
	}
}

func (w *walletState) totalValue() float64 {
	total := 0.0
	for _, asset := range w.Assets {
		total += asset.Value
	}
	return math.Round(total*100) / 100
}

// changePercent is the value-weighted average of per-asset daily moves.
func (w *walletState) changePercent() float64 {
	total := w.totalValue()
	if total == 0 {
		return 0
	}
	weighted := 0.0
	for _, asset := range w.Assets {
		weighted += asset.ChangePercent24h * asset.Value
	}
	return math.Round(weighted/total*100) / 100
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	wallet := s.walletFor(chi.URLParam(r, "userID"))
	total := wallet.totalValue()
	percent := wallet.changePercent()
	writeJSON(w, http.StatusOK, map[string]any{
		"total_value":        total,
		"change_24h":         math.Round(total*percent) / 100,
		"change_percent_24h": percent,
		"asset_count":        len(wallet.Assets),
		"currency":           wallet.Currency,
	})
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	wallet := s.walletFor(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]any{"assets": wallet.Assets})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	wallet := s.walletFor(chi.URLParam(r, "userID"))
	limit := intQuery(r, "limit", 10)
	transactions := wallet.Transactions
	if limit > 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}
	payload := make([]map[string]any, len(transactions))
	for i, tx := range transactions {
		payload[i] = map[string]any{
			"id":        tx.ID,
			"kind":      tx.Kind,
			"symbol":    tx.Symbol,
			"amount":    tx.Amount,
			"value":     tx.Value,
			"status":    tx.Status,
			"timestamp": tx.Timestamp.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": payload})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	wallet := s.walletFor(chi.URLParam(r, "userID"))
	days := intQuery(r, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 90 {
		days = 90
	}
	now := time.Now().UTC()
	base := wallet.totalValue()
	points := make([]map[string]any, 0, days)
	for i := days - 1; i >= 0; i-- {
		drift := math.Sin(float64(i)/4)*base*0.02 - float64(i)*base*0.001
		points = append(points, map[string]any{
			"timestamp": now.AddDate(0, 0, -i).Format(time.RFC3339),
			"value":     math.Round((base+drift)*100) / 100,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

func (s *Server) handleFinancialMood(w http.ResponseWriter, r *http.Request) {
	wallet := s.walletFor(chi.URLParam(r, "userID"))
	percent := wallet.changePercent()
	score := int(math.Round(50 + percent*8))
	if score > 95 {
		score = 95
	}
	if score < 5 {
		score = 5
	}
	factors := []map[string]any{
		{"type": "positive", "description": "محفظتك متنوعة بشكل جيد", "impact": 15},
	}
	if percent >= 0 {
		factors = append(factors, map[string]any{
			"type": "positive", "description": "ارتفاع قيمة الأصول خلال اليوم", "impact": int(math.Round(percent * 4)),
		})
	} else {
		factors = append(factors, map[string]any{
			"type": "negative", "description": "انخفاض في قيمة الأصول هذا الأسبوع", "impact": int(math.Round(percent * 4)),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"score": score, "factors": factors})
}

func (s *Server) handleMarket(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"quotes": []map[string]any{
			{"symbol": "BTC", "name": "Bitcoin", "price": 64075.12, "change_percent_24h": 3.1, "market_cap": 1.26e12},
			{"symbol": "ETH", "name": "Ethereum", "price": 3345.00, "change_percent_24h": 1.9, "market_cap": 4.02e11},
			{"symbol": "BNB", "name": "BNB", "price": 571.40, "change_percent_24h": 0.4, "market_cap": 8.4e10},
			{"symbol": "SOL", "name": "Solana", "price": 144.00, "change_percent_24h": -0.8, "market_cap": 6.7e10},
			{"symbol": "XRP", "name": "XRP", "price": 0.61, "change_percent_24h": -1.2, "market_cap": 3.4e10},
		},
	})
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
