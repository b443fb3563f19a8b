package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// AddWidgetRequest captures the data required to create a widget. Title and
// Size are optional; they default from the catalog entry for the type.
type AddWidgetRequest struct {
	Type  WidgetType `json:"type"`
	Title string     `json:"title,omitempty"`
	Size  WidgetSize `json:"size,omitempty"`
}

// StoreOptions configures a per-user widget Store. Every collaborator is
// provided via interface so applications can swap implementations.
type StoreOptions struct {
	UserID    string
	Layouts   LayoutStore
	Locale    string
	Telemetry Telemetry
	Hook      RefreshHook
	// Catalog resolves which widget types may be added. Defaults to the
	// built-in catalog; pass a Registry to honor manifest extensions.
	Catalog interface {
		Entry(widgetType WidgetType) (CatalogEntry, bool)
	}
	// Validator checks persisted documents at load time; invalid documents are
	// treated as absent and replaced by the default layout.
	Validator LayoutValidator
	// NewID overrides widget id generation (tests). Defaults to <type>-<uuid>.
	NewID func(WidgetType) string
}

// Store is the single source of truth for one user's widget list. All
// mutations funnel through it so the dense-position and unique-id invariants
// hold after every operation. Mutations are applied in memory first and then
// written through to the LayoutStore; a failed write surfaces as a
// *PersistenceError while the in-memory list remains authoritative for the
// session.
type Store struct {
	opts StoreOptions

	mu      sync.Mutex
	widgets []Widget
	loading bool
	loaded  bool
}

// NewStore builds a Store with safe defaults.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Layouts == nil {
		return nil, errMissingLayoutStore
	}
	if opts.UserID == "" {
		return nil, errMissingUserID
	}
	if opts.Hook == nil {
		opts.Hook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.NewID == nil {
		opts.NewID = func(t WidgetType) string {
			return fmt.Sprintf("%s-%s", t, uuid.NewString())
		}
	}
	if opts.Catalog == nil {
		opts.Catalog = builtinLookup{}
	}
	return &Store{opts: opts}, nil
}

// Load reads the persisted list for the user, seeding with the default layout
// when nothing (or nothing valid) is stored. The returned list is sorted by
// position. A Load while another Load is in flight returns the current
// in-memory list without touching the LayoutStore.
func (s *Store) Load(ctx context.Context) ([]Widget, error) {
	s.mu.Lock()
	if s.loading {
		out := snapshot(s.widgets)
		s.mu.Unlock()
		return out, nil
	}
	s.loading = true
	s.mu.Unlock()

	widgets, err := s.opts.Layouts.LoadWidgets(ctx, s.opts.UserID)
	seeded := false
	switch {
	case err != nil:
		// A read failure is treated as "no persisted state": the dashboard
		// must come up even when storage is unreachable or corrupt.
		s.record(ctx, "dashboard.layout.load_fallback", map[string]any{"error": err.Error()})
		widgets, seeded = DefaultLayout(), true
	case s.opts.Validator != nil && s.opts.Validator.ValidateLayout(widgets) != nil:
		s.record(ctx, "dashboard.layout.invalid_document", map[string]any{"count": len(widgets)})
		widgets, seeded = DefaultLayout(), true
	}
	sortByPosition(widgets)
	renumber(widgets)

	s.mu.Lock()
	s.widgets = widgets
	s.loading = false
	s.loaded = true
	out := snapshot(s.widgets)
	s.mu.Unlock()

	if seeded {
		if err := s.opts.Layouts.SaveWidgets(ctx, s.opts.UserID, out); err != nil {
			return out, &PersistenceError{Op: "seed", Err: err}
		}
	}
	s.record(ctx, "dashboard.layout.load", map[string]any{"count": len(out), "seeded": seeded})
	return out, nil
}

// IsLoading reports whether an initial Load is still in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) hasLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Widgets returns a position-sorted copy of the current list.
func (s *Store) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.widgets)
}

// WidgetIDs returns the ids of the current list in display order. The voice
// interpreter uses this for 1-based index removal.
func (s *Store) WidgetIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.widgets))
	for i, w := range s.widgets {
		ids[i] = w.ID
	}
	return ids
}

// Add appends a new widget at the end of the list. Unknown types are rejected
// with ErrInvalidWidgetType so a silent "unknown" tile never enters the list
// through this path.
func (s *Store) Add(ctx context.Context, req AddWidgetRequest) (Widget, error) {
	entry, ok := s.opts.Catalog.Entry(req.Type)
	if !ok {
		return Widget{}, fmt.Errorf("%w: %q", ErrInvalidWidgetType, req.Type)
	}
	size := req.Size
	if size == "" {
		size = entry.DefaultSize
		if size == "" {
			size = SizeMedium
		}
	}
	if !ValidSize(size) {
		return Widget{}, fmt.Errorf("%w: %q", ErrInvalidWidgetSize, req.Size)
	}
	title := req.Title
	if title == "" {
		title = entry.TitleForLocale(s.opts.Locale)
	}

	s.mu.Lock()
	widget := Widget{
		ID:       s.opts.NewID(req.Type),
		Type:     req.Type,
		Title:    title,
		Size:     size,
		Position: len(s.widgets),
	}
	s.widgets = append(s.widgets, widget)
	s.mu.Unlock()

	return widget, s.persist(ctx, "add", widget)
}

// Remove deletes the widget with the matching id and renumbers the survivors
// to stay dense. A missing id is a silent no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	var removed Widget
	found := false
	kept := s.widgets[:0]
	for _, w := range s.widgets {
		if w.ID == id {
			removed = w
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		s.mu.Unlock()
		s.record(ctx, "dashboard.widget.remove_noop", map[string]any{"widget_id": id})
		return nil
	}
	sortByPosition(kept)
	renumber(kept)
	s.widgets = kept
	s.mu.Unlock()

	return s.persist(ctx, "remove", removed)
}

// MoveUp swaps the widget with its predecessor in display order. The first
// widget ignores the request.
func (s *Store) MoveUp(ctx context.Context, id string) error {
	return s.move(ctx, id, -1)
}

// MoveDown swaps the widget with its successor in display order. The last
// widget ignores the request.
func (s *Store) MoveDown(ctx context.Context, id string) error {
	return s.move(ctx, id, +1)
}

func (s *Store) move(ctx context.Context, id string, delta int) error {
	s.mu.Lock()
	sortByPosition(s.widgets)
	idx := -1
	for i, w := range s.widgets {
		if w.ID == id {
			idx = i
			break
		}
	}
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(s.widgets) {
		s.mu.Unlock()
		return nil
	}
	s.widgets[idx], s.widgets[target] = s.widgets[target], s.widgets[idx]
	renumber(s.widgets)
	moved := s.widgets[target]
	s.mu.Unlock()

	return s.persist(ctx, "move", moved)
}

// Reorder replaces the list verbatim, typically after a drag-and-drop. The
// caller is responsible for keeping positions dense; the composer's index
// helpers always do.
func (s *Store) Reorder(ctx context.Context, widgets []Widget) error {
	s.mu.Lock()
	s.widgets = snapshot(widgets)
	sortByPosition(s.widgets)
	s.mu.Unlock()

	return s.persist(ctx, "reorder", Widget{})
}

// UpdateSize changes the column span of a widget. A missing id is a no-op.
func (s *Store) UpdateSize(ctx context.Context, id string, size WidgetSize) error {
	if !ValidSize(size) {
		return fmt.Errorf("%w: %q", ErrInvalidWidgetSize, size)
	}
	s.mu.Lock()
	var updated Widget
	found := false
	for i := range s.widgets {
		if s.widgets[i].ID == id {
			s.widgets[i].Size = size
			updated = s.widgets[i]
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return nil
	}
	return s.persist(ctx, "resize", updated)
}

// ResetToDefault replaces the entire list with a fresh copy of the default
// layout. Calling it twice in a row yields the same list both times.
func (s *Store) ResetToDefault(ctx context.Context) error {
	s.mu.Lock()
	s.widgets = DefaultLayout()
	s.mu.Unlock()

	return s.persist(ctx, "reset", Widget{})
}

func (s *Store) persist(ctx context.Context, reason string, widget Widget) error {
	out := s.Widgets()
	event := WidgetEvent{UserID: s.opts.UserID, Widget: widget, Reason: reason}
	if err := s.opts.Hook.WidgetUpdated(ctx, event); err != nil {
		s.record(ctx, "dashboard.widget.hook_error", map[string]any{"reason": reason, "error": err.Error()})
	}
	s.record(ctx, "dashboard.widget."+reason, map[string]any{"widget_id": widget.ID, "count": len(out)})
	if err := s.opts.Layouts.SaveWidgets(ctx, s.opts.UserID, out); err != nil {
		s.record(ctx, "dashboard.layout.save_error", map[string]any{"reason": reason, "error": err.Error()})
		return &PersistenceError{Op: reason, Err: err}
	}
	return nil
}

func (s *Store) record(ctx context.Context, event string, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["user_id"] = s.opts.UserID
	s.opts.Telemetry.Record(ctx, event, payload)
}

func snapshot(widgets []Widget) []Widget {
	out := make([]Widget, len(widgets))
	copy(out, widgets)
	sortByPosition(out)
	return out
}

func sortByPosition(widgets []Widget) {
	sort.SliceStable(widgets, func(i, j int) bool {
		return widgets[i].Position < widgets[j].Position
	})
}

// renumber assigns each widget its index as the new position, keeping the set
// of positions exactly {0..N-1}.
func renumber(widgets []Widget) {
	for i := range widgets {
		widgets[i].Position = i
	}
}

type builtinLookup struct{}

func (builtinLookup) Entry(t WidgetType) (CatalogEntry, bool) { return CatalogEntryFor(t) }

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error { return nil }
