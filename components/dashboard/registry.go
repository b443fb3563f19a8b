package dashboard

import (
	"fmt"
	"sync"
)

// WidgetHook lets packages register catalog entries/providers during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against new registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements ProviderRegistry with hook + manifest support. The
// built-in catalog is registered first so manifests and hooks can override
// titles or attach providers without re-declaring entries.
type Registry struct {
	mu        sync.RWMutex
	order     []WidgetType
	entries   map[WidgetType]CatalogEntry
	providers map[WidgetType]Provider
}

// NewRegistry builds a registry pre-loaded with the built-in catalog and
// default providers, then applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		entries:   map[WidgetType]CatalogEntry{},
		providers: map[WidgetType]Provider{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for _, entry := range BuiltinCatalog() {
		_ = r.RegisterEntry(entry)
		if provider, ok := defaultProviders[entry.Type]; ok {
			_ = r.RegisterProvider(entry.Type, provider)
		}
	}
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEntry stores catalog metadata. Re-registering a type updates the
// entry in place without changing its position in the picker order.
func (r *Registry) RegisterEntry(entry CatalogEntry) error {
	if entry.Type == "" {
		return fmt.Errorf("dashboard: catalog entry type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[entry.Type]; !exists {
		r.order = append(r.order, entry.Type)
	}
	r.entries[entry.Type] = entry
	return nil
}

// RegisterProvider associates a content provider with a catalog entry.
func (r *Registry) RegisterProvider(widgetType WidgetType, provider Provider) error {
	if widgetType == "" {
		return fmt.Errorf("dashboard: widget type is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("dashboard: provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[widgetType]; !ok {
		return fmt.Errorf("dashboard: catalog entry %s not found", widgetType)
	}
	r.providers[widgetType] = provider
	return nil
}

// Entry fetches a catalog entry by type.
func (r *Registry) Entry(widgetType WidgetType) (CatalogEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[widgetType]
	return entry, ok
}

// Provider fetches a content provider by type.
func (r *Registry) Provider(widgetType WidgetType) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[widgetType]
	return provider, ok
}

// Entries returns all registered catalog entries in picker order.
func (r *Registry) Entries() []CatalogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]CatalogEntry, 0, len(r.order))
	for _, t := range r.order {
		entries = append(entries, r.entries[t])
	}
	return entries
}

var _ ProviderRegistry = (*Registry)(nil)
