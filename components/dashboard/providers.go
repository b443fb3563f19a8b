package dashboard

import (
	"context"
	"math"
	"time"
)

// PortfolioSummary is the aggregate view of a user's holdings.
type PortfolioSummary struct {
	TotalValue       float64
	Change24h        float64
	ChangePercent24h float64
	AssetCount       int
	Currency         string
}

// WalletAsset is a single holding inside the wallet.
type WalletAsset struct {
	Symbol           string
	Name             string
	Amount           float64
	Value            float64
	ChangePercent24h float64
}

// TransactionRecord is one entry in the user's transaction history.
type TransactionRecord struct {
	ID        string
	Kind      string
	Symbol    string
	Amount    float64
	Value     float64
	Status    string
	Timestamp time.Time
}

// MarketQuote is a single coin's market snapshot.
type MarketQuote struct {
	Symbol           string
	Name             string
	Price            float64
	ChangePercent24h float64
	MarketCap        float64
}

// MoodFactor is one contributor to the financial mood score.
type MoodFactor struct {
	Type        string
	Description string
	Impact      int
}

// FinancialMood scores the overall health of a portfolio from 0 to 100.
type FinancialMood struct {
	Score   int
	Factors []MoodFactor
}

// PortfolioRepository loads the aggregate portfolio view.
type PortfolioRepository interface {
	FetchPortfolioSummary(ctx context.Context, userID string) (PortfolioSummary, error)
}

// AssetRepository loads individual wallet holdings.
type AssetRepository interface {
	FetchAssets(ctx context.Context, userID string) ([]WalletAsset, error)
}

// TransactionRepository loads recent transaction history.
type TransactionRepository interface {
	FetchTransactions(ctx context.Context, userID string, limit int) ([]TransactionRecord, error)
}

// MarketRepository loads global market quotes.
type MarketRepository interface {
	FetchMarket(ctx context.Context) ([]MarketQuote, error)
}

// MoodRepository loads the financial mood score for a user.
type MoodRepository interface {
	FetchFinancialMood(ctx context.Context, userID string) (FinancialMood, error)
}

const (
	MoodExcellent  = "excellent"
	MoodGood       = "good"
	MoodNeutral    = "neutral"
	MoodConcerning = "concerning"
	MoodCritical   = "critical"
)

// MoodLevelFor maps a 0..100 score to its named level.
func MoodLevelFor(score int) string {
	switch {
	case score >= 80:
		return MoodExcellent
	case score >= 60:
		return MoodGood
	case score >= 40:
		return MoodNeutral
	case score >= 20:
		return MoodConcerning
	default:
		return MoodCritical
	}
}

var moodEmoji = map[string]string{
	MoodExcellent:  "😁",
	MoodGood:       "😊",
	MoodNeutral:    "😐",
	MoodConcerning: "😟",
	MoodCritical:   "😰",
}

var moodMessages = map[string]map[string]string{
	MoodExcellent:  {"ar": "حالتك المالية ممتازة!", "en": "Your finances are excellent!"},
	MoodGood:       {"ar": "حالتك المالية جيدة", "en": "Your finances are in good shape"},
	MoodNeutral:    {"ar": "حالتك المالية متوازنة", "en": "Your finances are balanced"},
	MoodConcerning: {"ar": "حالتك المالية مقلقة", "en": "Your finances need attention"},
	MoodCritical:   {"ar": "حالتك المالية حرجة!", "en": "Your finances are critical!"},
}

// MoodMessageFor returns the localized summary line for a score.
func MoodMessageFor(score int, locale string) string {
	level := MoodLevelFor(score)
	return ResolveLocalizedValue(moodMessages[level], locale, moodMessages[level]["ar"])
}

// NewPortfolioSummaryProvider wires a PortfolioRepository into a Provider.
func NewPortfolioSummaryProvider(repo PortfolioRepository) Provider {
	if repo == nil {
		repo = DemoWalletRepository{}
	}
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		summary, err := repo.FetchPortfolioSummary(ctx, meta.UserID)
		if err != nil {
			return nil, err
		}
		return WidgetData{
			"total_value":        summary.TotalValue,
			"change_24h":         summary.Change24h,
			"change_percent_24h": summary.ChangePercent24h,
			"asset_count":        summary.AssetCount,
			"currency":           summary.Currency,
			"trend":              trendFor(summary.ChangePercent24h),
		}, nil
	})
}

// NewAssetListProvider wires an AssetRepository into a Provider.
func NewAssetListProvider(repo AssetRepository) Provider {
	if repo == nil {
		repo = DemoWalletRepository{}
	}
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		assets, err := repo.FetchAssets(ctx, meta.UserID)
		if err != nil {
			return nil, err
		}
		items := make([]map[string]any, 0, len(assets))
		for _, asset := range assets {
			items = append(items, map[string]any{
				"symbol":             asset.Symbol,
				"name":               asset.Name,
				"amount":             asset.Amount,
				"value":              asset.Value,
				"change_percent_24h": asset.ChangePercent24h,
			})
		}
		return WidgetData{"assets": items}, nil
	})
}

// NewTransactionHistoryProvider wires a TransactionRepository into a Provider.
func NewTransactionHistoryProvider(repo TransactionRepository, limit int) Provider {
	if repo == nil {
		repo = DemoWalletRepository{}
	}
	if limit <= 0 {
		limit = 10
	}
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		records, err := repo.FetchTransactions(ctx, meta.UserID, limit)
		if err != nil {
			return nil, err
		}
		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"id":        rec.ID,
				"kind":      rec.Kind,
				"symbol":    rec.Symbol,
				"amount":    rec.Amount,
				"value":     rec.Value,
				"status":    rec.Status,
				"timestamp": rec.Timestamp.UTC().Format(time.RFC3339),
			})
		}
		return WidgetData{"transactions": items, "limit": limit}, nil
	})
}

// NewMarketOverviewProvider wires a MarketRepository into a Provider.
func NewMarketOverviewProvider(repo MarketRepository) Provider {
	if repo == nil {
		repo = DemoWalletRepository{}
	}
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		quotes, err := repo.FetchMarket(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]map[string]any, 0, len(quotes))
		for _, quote := range quotes {
			items = append(items, map[string]any{
				"symbol":             quote.Symbol,
				"name":               quote.Name,
				"price":              quote.Price,
				"change_percent_24h": quote.ChangePercent24h,
				"market_cap":         quote.MarketCap,
			})
		}
		return WidgetData{"quotes": items}, nil
	})
}

// NewFinancialMoodProvider wires a MoodRepository into a Provider. The level,
// emoji, and localized message are derived server-side from the score.
func NewFinancialMoodProvider(repo MoodRepository) Provider {
	if repo == nil {
		repo = DemoWalletRepository{}
	}
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		mood, err := repo.FetchFinancialMood(ctx, meta.UserID)
		if err != nil {
			return nil, err
		}
		level := MoodLevelFor(mood.Score)
		factors := make([]map[string]any, 0, len(mood.Factors))
		for _, factor := range mood.Factors {
			factors = append(factors, map[string]any{
				"type":        factor.Type,
				"description": factor.Description,
				"impact":      factor.Impact,
			})
		}
		return WidgetData{
			"score":   mood.Score,
			"level":   level,
			"emoji":   moodEmoji[level],
			"message": MoodMessageFor(mood.Score, meta.Locale),
			"factors": factors,
		}, nil
	})
}

func trendFor(changePercent float64) string {
	switch {
	case changePercent > 0:
		return "up"
	case changePercent < 0:
		return "down"
	default:
		return "flat"
	}
}

func underDevelopmentProvider() Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		message := ResolveLocalizedValue(map[string]string{
			"ar": "هذه الميزة قيد التطوير",
			"en": "This feature is under development",
		}, meta.Locale, "هذه الميزة قيد التطوير")
		return WidgetData{"message": message, "available": false}, nil
	})
}

var defaultProviders = map[WidgetType]Provider{
	TypePortfolioSummary:   NewPortfolioSummaryProvider(DemoWalletRepository{}),
	TypePortfolioChart:     NewPortfolioChartProvider(DemoWalletRepository{}, nil, nil),
	TypeAssetList:          NewAssetListProvider(DemoWalletRepository{}),
	TypeTransactionHistory: NewTransactionHistoryProvider(DemoWalletRepository{}, 10),
	TypeMarketOverview:     NewMarketOverviewProvider(DemoWalletRepository{}),
	TypeFinancialMood:      NewFinancialMoodProvider(DemoWalletRepository{}),
	TypePriceAlerts:        underDevelopmentProvider(),
	TypeNewsFeed:           underDevelopmentProvider(),
}

// DemoWalletRepository serves deterministic wallet data for demos and tests.
type DemoWalletRepository struct{}

func (DemoWalletRepository) FetchPortfolioSummary(ctx context.Context, userID string) (PortfolioSummary, error) {
	assets, _ := DemoWalletRepository{}.FetchAssets(ctx, userID)
	total := 0.0
	for _, asset := range assets {
		total += asset.Value
	}
	return PortfolioSummary{
		TotalValue:       math.Round(total*100) / 100,
		Change24h:        412.37,
		ChangePercent24h: 2.8,
		AssetCount:       len(assets),
		Currency:         "USD",
	}, nil
}

func (DemoWalletRepository) FetchAssets(_ context.Context, _ string) ([]WalletAsset, error) {
	return []WalletAsset{
		{Symbol: "BTC", Name: "Bitcoin", Amount: 0.1845, Value: 11820.50, ChangePercent24h: 3.1},
		{Symbol: "ETH", Name: "Ethereum", Amount: 1.42, Value: 4750.10, ChangePercent24h: 1.9},
		{Symbol: "SOL", Name: "Solana", Amount: 18.6, Value: 2678.40, ChangePercent24h: -0.8},
		{Symbol: "USDT", Name: "Tether", Amount: 950, Value: 950.00, ChangePercent24h: 0},
	}, nil
}

func (DemoWalletRepository) FetchTransactions(_ context.Context, _ string, limit int) ([]TransactionRecord, error) {
	now := time.Now().UTC()
	records := []TransactionRecord{
		{ID: "tx-1007", Kind: "buy", Symbol: "BTC", Amount: 0.012, Value: 768.90, Status: "completed", Timestamp: now.Add(-2 * time.Hour)},
		{ID: "tx-1006", Kind: "sell", Symbol: "SOL", Amount: 4.2, Value: 604.80, Status: "completed", Timestamp: now.Add(-26 * time.Hour)},
		{ID: "tx-1005", Kind: "receive", Symbol: "ETH", Amount: 0.25, Value: 836.25, Status: "completed", Timestamp: now.Add(-49 * time.Hour)},
		{ID: "tx-1004", Kind: "send", Symbol: "USDT", Amount: 120, Value: 120.00, Status: "completed", Timestamp: now.Add(-72 * time.Hour)},
		{ID: "tx-1003", Kind: "buy", Symbol: "ETH", Amount: 0.5, Value: 1672.50, Status: "completed", Timestamp: now.Add(-96 * time.Hour)},
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (DemoWalletRepository) FetchMarket(_ context.Context) ([]MarketQuote, error) {
	return []MarketQuote{
		{Symbol: "BTC", Name: "Bitcoin", Price: 64075.12, ChangePercent24h: 3.1, MarketCap: 1.26e12},
		{Symbol: "ETH", Name: "Ethereum", Price: 3345.00, ChangePercent24h: 1.9, MarketCap: 4.02e11},
		{Symbol: "BNB", Name: "BNB", Price: 571.40, ChangePercent24h: 0.4, MarketCap: 8.4e10},
		{Symbol: "SOL", Name: "Solana", Price: 144.00, ChangePercent24h: -0.8, MarketCap: 6.7e10},
		{Symbol: "XRP", Name: "XRP", Price: 0.61, ChangePercent24h: -1.2, MarketCap: 3.4e10},
	}, nil
}

func (DemoWalletRepository) FetchFinancialMood(_ context.Context, _ string) (FinancialMood, error) {
	return FinancialMood{
		Score: 72,
		Factors: []MoodFactor{
			{Type: "positive", Description: "محفظتك متنوعة بشكل جيد", Impact: 15},
			{Type: "positive", Description: "التزام منتظم بالميزانية", Impact: 10},
			{Type: "negative", Description: "انخفاض في قيمة الأصول هذا الأسبوع", Impact: -12},
		},
	}, nil
}

func (DemoWalletRepository) FetchPortfolioHistory(_ context.Context, _ string, days int) ([]PortfolioHistoryPoint, error) {
	if days <= 0 {
		days = 30
	}
	if days > 90 {
		days = 90
	}
	now := time.Now().UTC()
	base := 18500.0
	points := make([]PortfolioHistoryPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		drift := math.Sin(float64(i)/4) * 420
		points = append(points, PortfolioHistoryPoint{
			Timestamp: now.AddDate(0, 0, -i),
			Value:     math.Round((base+drift+float64(days-i)*35)*100) / 100,
		})
	}
	return points, nil
}
