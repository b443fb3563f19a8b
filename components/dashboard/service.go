package dashboard

import (
	"context"
	"sync"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Layouts   LayoutStore
	Registry  ProviderRegistry
	Hook      RefreshHook
	Telemetry Telemetry
	Validator LayoutValidator
	Locale    string
	// NewID overrides widget id generation for the per-user stores.
	NewID func(WidgetType) string
}

// Service orchestrates widget dashboards for many users. It lazily builds one
// Store per user and shares the registry, renderer, and persistence layer
// across all of them.
type Service struct {
	opts     Options
	renderer *Renderer

	mu     sync.Mutex
	stores map[string]*Store
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Layouts == nil {
		return nil, errMissingLayoutStore
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:     opts,
		renderer: NewRenderer(opts.Registry, opts.Telemetry),
		stores:   make(map[string]*Store),
	}, nil
}

// StoreFor returns the widget store for a user, creating it on first use.
func (s *Service) StoreFor(userID string) (*Store, error) {
	if userID == "" {
		return nil, errMissingUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.stores[userID]; ok {
		return store, nil
	}
	store, err := NewStore(StoreOptions{
		UserID:    userID,
		Layouts:   s.opts.Layouts,
		Locale:    s.opts.Locale,
		Telemetry: s.opts.Telemetry,
		Hook:      s.opts.Hook,
		Catalog:   s.opts.Registry,
		Validator: s.opts.Validator,
		NewID:     s.opts.NewID,
	})
	if err != nil {
		return nil, err
	}
	s.stores[userID] = store
	return store, nil
}

// LoadLayout loads (seeding if necessary) the user's widget list.
func (s *Service) LoadLayout(ctx context.Context, userID string) ([]Widget, error) {
	store, err := s.StoreFor(userID)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx)
}

// Widgets returns the user's current widget list in display order.
func (s *Service) Widgets(ctx context.Context, userID string) ([]Widget, error) {
	store, err := s.StoreFor(userID)
	if err != nil {
		return nil, err
	}
	if !store.hasLoaded() {
		return store.Load(ctx)
	}
	return store.Widgets(), nil
}

// loadedStoreFor returns the user's store with the persisted layout loaded.
// Mutating an unloaded store would treat the list as empty and write a fresh
// layout over the user's durable copy. A failed seed write-through is not
// fatal here; the mutation's own save reports persistence trouble.
func (s *Service) loadedStoreFor(ctx context.Context, userID string) (*Store, error) {
	store, err := s.StoreFor(userID)
	if err != nil {
		return nil, err
	}
	if !store.hasLoaded() {
		if _, err := store.Load(ctx); err != nil && !IsPersistenceFailure(err) {
			return nil, err
		}
	}
	return store, nil
}

// AddWidget appends a widget of the requested type to the user's dashboard.
func (s *Service) AddWidget(ctx context.Context, userID string, req AddWidgetRequest) (Widget, error) {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return Widget{}, err
	}
	return store.Add(ctx, req)
}

// RemoveWidget removes the widget with the given id.
func (s *Service) RemoveWidget(ctx context.Context, userID, widgetID string) error {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return err
	}
	return store.Remove(ctx, widgetID)
}

// MoveWidgetUp swaps the widget with its predecessor.
func (s *Service) MoveWidgetUp(ctx context.Context, userID, widgetID string) error {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return err
	}
	return store.MoveUp(ctx, widgetID)
}

// MoveWidgetDown swaps the widget with its successor.
func (s *Service) MoveWidgetDown(ctx context.Context, userID, widgetID string) error {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return err
	}
	return store.MoveDown(ctx, widgetID)
}

// ReorderWidgets replaces the user's list wholesale.
func (s *Service) ReorderWidgets(ctx context.Context, userID string, widgets []Widget) error {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return err
	}
	return store.Reorder(ctx, widgets)
}

// UpdateWidgetSize changes a widget's column span.
func (s *Service) UpdateWidgetSize(ctx context.Context, userID, widgetID string, size WidgetSize) error {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return err
	}
	return store.UpdateSize(ctx, widgetID, size)
}

// ResetLayout restores the user's dashboard to the default widgets.
func (s *Service) ResetLayout(ctx context.Context, userID string) error {
	store, err := s.loadedStoreFor(ctx, userID)
	if err != nil {
		return err
	}
	return store.ResetToDefault(ctx)
}

// Catalog returns the available widget types in picker order.
func (s *Service) Catalog() []CatalogEntry {
	return s.opts.Registry.Entries()
}

// RenderDashboard loads the user's layout and renders every tile. A failed
// seed write-through still yields the in-memory views; the PersistenceError
// rides along so transports can surface it.
func (s *Service) RenderDashboard(ctx context.Context, userID string) ([]WidgetView, error) {
	widgets, err := s.Widgets(ctx, userID)
	if err != nil && !IsPersistenceFailure(err) {
		return nil, err
	}
	views := make([]WidgetView, len(widgets))
	for i, widget := range widgets {
		views[i] = s.renderer.Render(ctx, WidgetContext{
			Widget: widget,
			UserID: userID,
			Locale: s.opts.Locale,
		})
	}
	return views, err
}

// ComposeLayout renders the user's dashboard into a responsive grid.
func (s *Service) ComposeLayout(ctx context.Context, userID string) (GridLayout, error) {
	views, err := s.RenderDashboard(ctx, userID)
	if err != nil && !IsPersistenceFailure(err) {
		return GridLayout{}, err
	}
	return composeGrid(views), err
}
