package dashboard

import (
	"context"
	"errors"
	"testing"
)

func TestSpanForSizes(t *testing.T) {
	cases := map[WidgetSize]int{
		SizeSmall:  4,
		SizeMedium: 6,
		SizeLarge:  8,
		SizeFull:   12,
		"":         6,
	}
	for size, want := range cases {
		if got := SpanFor(size); got != want {
			t.Fatalf("SpanFor(%q) = %d, want %d", size, got, want)
		}
	}
}

func TestComposeRendersGridInDisplayOrder(t *testing.T) {
	store := newTestStore(t, StoreOptions{})
	composer, err := NewComposer(store, ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}

	layout, err := composer.Compose(context.Background())
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if layout.Columns != GridColumns {
		t.Fatalf("expected %d columns, got %d", GridColumns, layout.Columns)
	}
	widgets := store.Widgets()
	if len(layout.Cells) != len(widgets) {
		t.Fatalf("expected %d cells, got %d", len(widgets), len(layout.Cells))
	}
	for i, cell := range layout.Cells {
		if cell.View.Widget.ID != widgets[i].ID {
			t.Fatalf("cell %d out of order", i)
		}
		if cell.Span != SpanFor(widgets[i].Size) {
			t.Fatalf("cell %d span %d, want %d", i, cell.Span, SpanFor(widgets[i].Size))
		}
	}
}

func TestComposeToleratesPersistenceFailure(t *testing.T) {
	layouts := &failingLayoutStore{loadErr: ErrLayoutNotFound, saveErr: errors.New("down")}
	store := newTestStore(t, StoreOptions{Layouts: layouts})
	composer, err := NewComposer(store, ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}

	layout, err := composer.Compose(context.Background())
	if err != nil {
		t.Fatalf("expected compose to tolerate seed persistence failure, got %v", err)
	}
	if len(layout.Cells) != len(DefaultLayout()) {
		t.Fatalf("expected default layout composed, got %d cells", len(layout.Cells))
	}
}

func TestComposerIndexHelpers(t *testing.T) {
	store := newTestStore(t, StoreOptions{})
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	composer, err := NewComposer(store, ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}
	before := store.Widgets()

	if err := composer.MoveDownAt(context.Background(), 0); err != nil {
		t.Fatalf("MoveDownAt returned error: %v", err)
	}
	if store.Widgets()[1].ID != before[0].ID {
		t.Fatalf("expected first widget moved down")
	}
	if err := composer.RemoveAt(context.Background(), 0); err != nil {
		t.Fatalf("RemoveAt returned error: %v", err)
	}
	if len(store.Widgets()) != len(before)-1 {
		t.Fatalf("expected one widget removed")
	}
}

func TestComposerOutOfRangeIndexIsNoop(t *testing.T) {
	store := newTestStore(t, StoreOptions{})
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	composer, err := NewComposer(store, ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}
	count := len(store.Widgets())

	if err := composer.RemoveAt(context.Background(), count+5); err != nil {
		t.Fatalf("expected out-of-range remove to no-op, got %v", err)
	}
	if err := composer.MoveUpAt(context.Background(), -1); err != nil {
		t.Fatalf("expected negative index move to no-op, got %v", err)
	}
	if len(store.Widgets()) != count {
		t.Fatalf("expected widget list untouched")
	}
}

func TestComposerEditMode(t *testing.T) {
	store := newTestStore(t, StoreOptions{})
	composer, err := NewComposer(store, ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}
	if composer.Editing() {
		t.Fatalf("expected edit mode off by default")
	}
	composer.SetEditing(true)
	if !composer.Editing() {
		t.Fatalf("expected edit mode on")
	}
}

func TestComposerVoiceUnsupported(t *testing.T) {
	store := newTestStore(t, StoreOptions{})
	composer, err := NewComposer(store, ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}
	if composer.VoiceSupported() {
		t.Fatalf("expected voice unsupported without an engine")
	}
	if err := composer.StartVoice(context.Background()); !errors.Is(err, ErrVoiceUnsupported) {
		t.Fatalf("expected ErrVoiceUnsupported, got %v", err)
	}
	if err := composer.StopVoice(); err != nil {
		t.Fatalf("expected nil-safe StopVoice, got %v", err)
	}
}

func TestComposerVoiceDelegates(t *testing.T) {
	store := newTestStore(t, StoreOptions{})
	vc := &fakeVoiceControl{supported: true}
	composer, err := NewComposer(store, ComposerOptions{Voice: vc})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}
	if !composer.VoiceSupported() {
		t.Fatalf("expected voice supported")
	}
	if err := composer.StartVoice(context.Background()); err != nil {
		t.Fatalf("StartVoice returned error: %v", err)
	}
	if err := composer.StopVoice(); err != nil {
		t.Fatalf("StopVoice returned error: %v", err)
	}
	if vc.starts != 1 || vc.stops != 1 {
		t.Fatalf("expected delegation, got %d starts %d stops", vc.starts, vc.stops)
	}
}

type fakeVoiceControl struct {
	supported bool
	starts    int
	stops     int
}

func (f *fakeVoiceControl) Start(context.Context) error { f.starts++; return nil }
func (f *fakeVoiceControl) Stop() error                 { f.stops++; return nil }
func (f *fakeVoiceControl) Supported() bool             { return f.supported }

var _ VoiceControl = (*fakeVoiceControl)(nil)
