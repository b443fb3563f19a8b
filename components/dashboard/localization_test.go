package dashboard

import "testing"

func TestResolveLocalizedValueExactMatch(t *testing.T) {
	values := map[string]string{"ar": "الأصول", "en": "Assets"}
	if got := ResolveLocalizedValue(values, "en", "fallback"); got != "Assets" {
		t.Fatalf("expected English value, got %q", got)
	}
}

func TestResolveLocalizedValueRegionFallsBackToBase(t *testing.T) {
	values := map[string]string{"ar": "الأصول", "en": "Assets"}
	if got := ResolveLocalizedValue(values, "ar-SA", "fallback"); got != "الأصول" {
		t.Fatalf("expected base-language match, got %q", got)
	}
}

func TestResolveLocalizedValueCaseInsensitive(t *testing.T) {
	values := map[string]string{"EN": "Assets"}
	if got := ResolveLocalizedValue(values, "en-us", "fallback"); got != "Assets" {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
}

func TestResolveLocalizedValueDefaultKey(t *testing.T) {
	values := map[string]string{"default": "Anything", "fr": "Actifs"}
	if got := ResolveLocalizedValue(values, "de", "fallback"); got != "Anything" {
		t.Fatalf("expected default key, got %q", got)
	}
}

func TestResolveLocalizedValueFallback(t *testing.T) {
	if got := ResolveLocalizedValue(nil, "en", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := ResolveLocalizedValue(map[string]string{"fr": "Actifs"}, "de", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for unmatched locale, got %q", got)
	}
}

func TestDefaultTitleForUnknownType(t *testing.T) {
	if got := DefaultTitleFor("mystery-widget", "en"); got != "mystery-widget" {
		t.Fatalf("expected raw type string, got %q", got)
	}
}

func TestDefaultTitleForLocales(t *testing.T) {
	if got := DefaultTitleFor(TypeAssetList, ""); got != "الأصول" {
		t.Fatalf("expected Arabic default, got %q", got)
	}
	if got := DefaultTitleFor(TypeAssetList, "en"); got != "Assets" {
		t.Fatalf("expected English title, got %q", got)
	}
}
