package dashboard

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryLayoutStoreRoundTrip(t *testing.T) {
	store := NewMemoryLayoutStore()
	widgets := DefaultLayout()

	if err := store.SaveWidgets(context.Background(), "u1", widgets); err != nil {
		t.Fatalf("SaveWidgets returned error: %v", err)
	}
	loaded, err := store.LoadWidgets(context.Background(), "u1")
	if err != nil {
		t.Fatalf("LoadWidgets returned error: %v", err)
	}
	if len(loaded) != len(widgets) {
		t.Fatalf("expected %d widgets, got %d", len(widgets), len(loaded))
	}
}

func TestMemoryLayoutStoreNotFound(t *testing.T) {
	store := NewMemoryLayoutStore()
	_, err := store.LoadWidgets(context.Background(), "nobody")
	if !errors.Is(err, ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}
}

func TestMemoryLayoutStoreRequiresUserID(t *testing.T) {
	store := NewMemoryLayoutStore()
	if _, err := store.LoadWidgets(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty user id")
	}
	if err := store.SaveWidgets(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestMemoryLayoutStoreIsolatesUsers(t *testing.T) {
	store := NewMemoryLayoutStore()
	_ = store.SaveWidgets(context.Background(), "u1", DefaultLayout())
	_ = store.SaveWidgets(context.Background(), "u2", []Widget{})

	u2, err := store.LoadWidgets(context.Background(), "u2")
	if err != nil {
		t.Fatalf("LoadWidgets returned error: %v", err)
	}
	if len(u2) != 0 {
		t.Fatalf("expected u2 layout empty, got %d widgets", len(u2))
	}
}

func TestMemoryLayoutStoreDefensiveCopies(t *testing.T) {
	store := NewMemoryLayoutStore()
	widgets := DefaultLayout()
	_ = store.SaveWidgets(context.Background(), "u1", widgets)
	widgets[0].Title = "mutated"

	loaded, err := store.LoadWidgets(context.Background(), "u1")
	if err != nil {
		t.Fatalf("LoadWidgets returned error: %v", err)
	}
	if loaded[0].Title == "mutated" {
		t.Fatalf("stored layout aliases caller slice")
	}
	loaded[0].Title = "also mutated"
	again, _ := store.LoadWidgets(context.Background(), "u1")
	if again[0].Title == "also mutated" {
		t.Fatalf("loaded layout aliases stored slice")
	}
}
