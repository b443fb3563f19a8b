package dashboard

import (
	"context"
	"errors"
	"testing"
)

func TestRenderUnknownTypeProducesPlaceholder(t *testing.T) {
	renderer := NewRenderer(NewRegistry(), nil)
	view := renderer.Render(context.Background(), WidgetContext{
		Widget: Widget{ID: "w1", Type: "legacy-widget"},
	})
	if view.Status != ViewStatusUnknown {
		t.Fatalf("expected unknown status, got %q", view.Status)
	}
	if view.Data["message"] != "عنصر غير معروف" {
		t.Fatalf("expected Arabic placeholder, got %v", view.Data["message"])
	}
}

func TestRenderUnknownTypeLocalizedPlaceholder(t *testing.T) {
	renderer := NewRenderer(NewRegistry(), nil)
	view := renderer.Render(context.Background(), WidgetContext{
		Widget: Widget{ID: "w1", Type: "legacy-widget"},
		Locale: "en-US",
	})
	if view.Data["message"] != "Unknown widget" {
		t.Fatalf("expected English placeholder, got %v", view.Data["message"])
	}
}

func TestRenderProviderErrorProducesPlaceholder(t *testing.T) {
	registry := NewRegistry()
	_ = registry.RegisterProvider(TypeNewsFeed, ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("upstream down")
	}))
	telemetry := &recordingTelemetry{}
	renderer := NewRenderer(registry, telemetry)

	view := renderer.Render(context.Background(), WidgetContext{
		Widget: Widget{ID: "w1", Type: TypeNewsFeed},
	})
	if view.Status != ViewStatusError {
		t.Fatalf("expected error status, got %q", view.Status)
	}
	if view.Data["message"] != "تعذر تحميل المحتوى" {
		t.Fatalf("expected failure placeholder, got %v", view.Data["message"])
	}
	if telemetry.events["dashboard.render.provider_error"] != 1 {
		t.Fatalf("expected provider_error event recorded")
	}
}

func TestRenderHealthyProvider(t *testing.T) {
	registry := NewRegistry()
	_ = registry.RegisterProvider(TypeNewsFeed, ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{"headline": "markets up"}, nil
	}))
	renderer := NewRenderer(registry, nil)

	view := renderer.Render(context.Background(), WidgetContext{
		Widget: Widget{ID: "w1", Type: TypeNewsFeed},
	})
	if view.Status != ViewStatusOK {
		t.Fatalf("expected ok status, got %q", view.Status)
	}
	if view.Data["headline"] != "markets up" {
		t.Fatalf("expected provider data passed through, got %v", view.Data)
	}
}

type recordingTelemetry struct {
	events map[string]int
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	if r.events == nil {
		r.events = map[string]int{}
	}
	r.events[event]++
}
