package dashboard

import "context"

// WidgetView is the rendered form of a single tile: the widget itself plus the
// payload its provider fetched. Status distinguishes healthy tiles from the
// graceful-degradation placeholders.
type WidgetView struct {
	Widget Widget     `json:"widget"`
	Status string     `json:"status"`
	Data   WidgetData `json:"data,omitempty"`
}

const (
	// ViewStatusOK marks a tile whose provider returned data.
	ViewStatusOK = "ok"
	// ViewStatusUnknown marks a tile with no registered provider. Corrupted or
	// future-versioned widget types land here instead of crashing the grid.
	ViewStatusUnknown = "unknown"
	// ViewStatusError marks a tile whose provider failed; the tile still
	// renders with a placeholder payload.
	ViewStatusError = "error"
)

// Renderer maps a widget's type to its content provider and triggers the data
// fetch. It never returns an error: unknown types and provider failures
// produce placeholder views.
type Renderer struct {
	registry  ProviderRegistry
	telemetry Telemetry
}

// NewRenderer builds a renderer over the given registry.
func NewRenderer(registry ProviderRegistry, telemetry Telemetry) *Renderer {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Renderer{registry: registry, telemetry: normalizeTelemetry(telemetry)}
}

// Render resolves the provider for the widget's type and fetches its data.
func (r *Renderer) Render(ctx context.Context, meta WidgetContext) WidgetView {
	provider, ok := r.registry.Provider(meta.Widget.Type)
	if !ok {
		r.telemetry.Record(ctx, "dashboard.render.unknown_type", map[string]any{
			"widget_id": meta.Widget.ID,
			"type":      string(meta.Widget.Type),
		})
		return WidgetView{
			Widget: meta.Widget,
			Status: ViewStatusUnknown,
			Data:   placeholderData(meta.Locale, "عنصر غير معروف", "Unknown widget"),
		}
	}
	data, err := provider.Fetch(ctx, meta)
	if err != nil {
		r.telemetry.Record(ctx, "dashboard.render.provider_error", map[string]any{
			"widget_id": meta.Widget.ID,
			"type":      string(meta.Widget.Type),
			"error":     err.Error(),
		})
		return WidgetView{
			Widget: meta.Widget,
			Status: ViewStatusError,
			Data:   placeholderData(meta.Locale, "تعذر تحميل المحتوى", "Content failed to load"),
		}
	}
	return WidgetView{Widget: meta.Widget, Status: ViewStatusOK, Data: data}
}

func placeholderData(locale, arabic, english string) WidgetData {
	message := ResolveLocalizedValue(map[string]string{"ar": arabic, "en": english}, locale, arabic)
	return WidgetData{"message": message}
}
