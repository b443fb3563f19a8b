package dashboard

import "context"

// WidgetType identifies which content provider and data fetch a widget uses.
// The set is closed; persisted documents carrying unknown values are rendered
// as placeholders rather than rejected (see Renderer).
type WidgetType string

const (
	TypePortfolioSummary   WidgetType = "portfolio-summary"
	TypePortfolioChart     WidgetType = "portfolio-chart"
	TypeAssetList          WidgetType = "asset-list"
	TypeTransactionHistory WidgetType = "transaction-history"
	TypeMarketOverview     WidgetType = "market-overview"
	TypePriceAlerts        WidgetType = "price-alerts"
	TypeNewsFeed           WidgetType = "news-feed"
	TypeFinancialMood      WidgetType = "financial-mood-indicator"
)

// WidgetSize controls the responsive column span of a tile. Sizes are purely
// presentational and never affect position assignment.
type WidgetSize string

const (
	SizeSmall  WidgetSize = "small"
	SizeMedium WidgetSize = "medium"
	SizeLarge  WidgetSize = "large"
	SizeFull   WidgetSize = "full"
)

// ValidSize reports whether s is one of the four supported sizes.
func ValidSize(s WidgetSize) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeFull:
		return true
	}
	return false
}

// Widget is a single dashboard tile. ID is stable across reorders and is the
// removal/reorder key. Title is captured from the catalog at creation time and
// never re-derived. Position is zero-based and dense within a user's list.
type Widget struct {
	ID       string     `json:"id"`
	Type     WidgetType `json:"type"`
	Title    string     `json:"title"`
	Size     WidgetSize `json:"size"`
	Position int        `json:"position"`
}

// LayoutStore is the persistence collaborator holding the durable copy of a
// user's widget list. Implementations ensure thread safety; the Store reads at
// load and writes through after every mutation.
type LayoutStore interface {
	// LoadWidgets returns ErrLayoutNotFound when no layout has been saved for
	// the user yet.
	LoadWidgets(ctx context.Context, userID string) ([]Widget, error)
	SaveWidgets(ctx context.Context, userID string, widgets []Widget) error
}

// RefreshHook notifies transports (REST/WebSocket) about widget changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetEvent describes a layout change that transports might care about.
type WidgetEvent struct {
	UserID string `json:"user_id"`
	Widget Widget `json:"widget"`
	Reason string `json:"reason"`
}

// ProviderRegistry stores catalog entries and content providers discoverable
// via hooks or manifests.
type ProviderRegistry interface {
	RegisterEntry(entry CatalogEntry) error
	RegisterProvider(widgetType WidgetType, provider Provider) error
	Entry(widgetType WidgetType) (CatalogEntry, bool)
	Provider(widgetType WidgetType) (Provider, bool)
	Entries() []CatalogEntry
}

// VoiceControl is the narrow surface the Layout Composer needs from a voice
// command session. The speech stack lives in components/dashboard/voice; when
// no engine is available Supported reports false and the composer keeps every
// keyboard/mouse affordance functional.
type VoiceControl interface {
	Start(ctx context.Context) error
	Stop() error
	Supported() bool
}
