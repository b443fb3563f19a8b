package dashboard

import "context"

// Provider fetches the data a widget tile needs from the wallet collaborator
// API (portfolio summary, transactions, market data, ...).
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch satisfies Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetContext carries the metadata providers need.
type WidgetContext struct {
	Widget Widget
	UserID string
	Locale string
}

// WidgetData is an opaque payload handed to whatever renders the tile.
type WidgetData map[string]any
