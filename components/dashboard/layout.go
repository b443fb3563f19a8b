package dashboard

import (
	"context"
	"errors"
	"sync"
)

// GridColumns is the width of the responsive layout grid.
const GridColumns = 12

// SpanFor maps a widget size to its column span on the 12-column grid.
func SpanFor(size WidgetSize) int {
	switch size {
	case SizeSmall:
		return 4
	case SizeLarge:
		return 8
	case SizeFull:
		return GridColumns
	default:
		return 6
	}
}

// GridCell is one rendered tile placed on the grid.
type GridCell struct {
	View WidgetView `json:"view"`
	Span int        `json:"span"`
}

// GridLayout is the composed dashboard page: rendered tiles in display order
// with their grid spans.
type GridLayout struct {
	Columns int        `json:"columns"`
	Cells   []GridCell `json:"cells"`
}

func composeGrid(views []WidgetView) GridLayout {
	cells := make([]GridCell, len(views))
	for i, view := range views {
		cells[i] = GridCell{View: view, Span: SpanFor(view.Widget.Size)}
	}
	return GridLayout{Columns: GridColumns, Cells: cells}
}

// ErrVoiceUnsupported is returned when voice control is requested but no
// speech engine is wired in.
var ErrVoiceUnsupported = errors.New("dashboard: voice control not supported")

// Composer drives one user's dashboard page: it renders the grid, exposes the
// edit-mode reorder helpers, and hosts the optional voice control. All widget
// mutations go through the Store so the layout invariants hold.
type Composer struct {
	store    *Store
	renderer *Renderer
	voice    VoiceControl
	locale   string

	mu      sync.Mutex
	editing bool
}

// ComposerOptions configures a Composer.
type ComposerOptions struct {
	Renderer *Renderer
	Voice    VoiceControl
	Locale   string
}

// NewComposer builds a composer over the given store.
func NewComposer(store *Store, opts ComposerOptions) (*Composer, error) {
	if store == nil {
		return nil, errors.New("dashboard: composer requires a store")
	}
	if opts.Renderer == nil {
		opts.Renderer = NewRenderer(NewRegistry(), nil)
	}
	return &Composer{
		store:    store,
		renderer: opts.Renderer,
		voice:    opts.Voice,
		locale:   opts.Locale,
	}, nil
}

// Compose loads the layout if needed and renders every tile onto the grid.
func (c *Composer) Compose(ctx context.Context) (GridLayout, error) {
	widgets := c.store.Widgets()
	if !c.store.hasLoaded() {
		loaded, err := c.store.Load(ctx)
		if err != nil && !IsPersistenceFailure(err) {
			return GridLayout{}, err
		}
		widgets = loaded
	}
	views := make([]WidgetView, len(widgets))
	for i, widget := range widgets {
		views[i] = c.renderer.Render(ctx, WidgetContext{
			Widget: widget,
			UserID: c.store.opts.UserID,
			Locale: c.locale,
		})
	}
	return composeGrid(views), nil
}

// SetEditing toggles edit mode. Edit mode is a pure view concern; the move and
// remove helpers work regardless so voice commands can mutate outside it.
func (c *Composer) SetEditing(editing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = editing
}

// Editing reports whether edit mode is active.
func (c *Composer) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// MoveUpAt moves the widget at the zero-based display index one slot earlier.
func (c *Composer) MoveUpAt(ctx context.Context, index int) error {
	id, ok := c.idAt(index)
	if !ok {
		return nil
	}
	return c.store.MoveUp(ctx, id)
}

// MoveDownAt moves the widget at the zero-based display index one slot later.
func (c *Composer) MoveDownAt(ctx context.Context, index int) error {
	id, ok := c.idAt(index)
	if !ok {
		return nil
	}
	return c.store.MoveDown(ctx, id)
}

// RemoveAt removes the widget at the zero-based display index.
func (c *Composer) RemoveAt(ctx context.Context, index int) error {
	id, ok := c.idAt(index)
	if !ok {
		return nil
	}
	return c.store.Remove(ctx, id)
}

func (c *Composer) idAt(index int) (string, bool) {
	ids := c.store.WidgetIDs()
	if index < 0 || index >= len(ids) {
		return "", false
	}
	return ids[index], true
}

// VoiceSupported reports whether a speech engine is wired in and usable.
func (c *Composer) VoiceSupported() bool {
	return c.voice != nil && c.voice.Supported()
}

// StartVoice begins voice command listening.
func (c *Composer) StartVoice(ctx context.Context) error {
	if !c.VoiceSupported() {
		return ErrVoiceUnsupported
	}
	return c.voice.Start(ctx)
}

// StopVoice stops voice command listening.
func (c *Composer) StopVoice() error {
	if c.voice == nil {
		return nil
	}
	return c.voice.Stop()
}
