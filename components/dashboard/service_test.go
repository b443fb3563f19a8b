package dashboard

import (
	"context"
	"errors"
	"testing"
)

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Layouts == nil {
		opts.Layouts = NewMemoryLayoutStore()
	}
	service, err := NewService(opts)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return service
}

func TestNewServiceRequiresLayoutStore(t *testing.T) {
	if _, err := NewService(Options{}); err == nil {
		t.Fatalf("expected error without layout store")
	}
}

func TestServiceStoreForIsPerUser(t *testing.T) {
	service := newTestService(t, Options{})
	a, err := service.StoreFor("alice")
	if err != nil {
		t.Fatalf("StoreFor returned error: %v", err)
	}
	b, err := service.StoreFor("bob")
	if err != nil {
		t.Fatalf("StoreFor returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct stores per user")
	}
	again, _ := service.StoreFor("alice")
	if a != again {
		t.Fatalf("expected store reused for the same user")
	}
}

func TestServiceStoreForRequiresUserID(t *testing.T) {
	service := newTestService(t, Options{})
	if _, err := service.StoreFor(""); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestServiceWidgetsLoadsLazily(t *testing.T) {
	service := newTestService(t, Options{})
	widgets, err := service.Widgets(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Widgets returned error: %v", err)
	}
	if len(widgets) != len(DefaultLayout()) {
		t.Fatalf("expected seeded layout, got %d widgets", len(widgets))
	}
}

func TestServiceMutationsAreIsolatedPerUser(t *testing.T) {
	service := newTestService(t, Options{})
	ctx := context.Background()

	if _, err := service.LoadLayout(ctx, "alice"); err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if _, err := service.LoadLayout(ctx, "bob"); err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if _, err := service.AddWidget(ctx, "alice", AddWidgetRequest{Type: TypeNewsFeed}); err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}

	alice, _ := service.Widgets(ctx, "alice")
	bob, _ := service.Widgets(ctx, "bob")
	if len(alice) != len(bob)+1 {
		t.Fatalf("expected alice to have one extra widget, got %d vs %d", len(alice), len(bob))
	}
}

func TestServiceResetLayout(t *testing.T) {
	service := newTestService(t, Options{})
	ctx := context.Background()

	if _, err := service.AddWidget(ctx, "alice", AddWidgetRequest{Type: TypeNewsFeed}); err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := service.ResetLayout(ctx, "alice"); err != nil {
		t.Fatalf("ResetLayout returned error: %v", err)
	}
	widgets, _ := service.Widgets(ctx, "alice")
	if len(widgets) != len(DefaultLayout()) {
		t.Fatalf("expected default layout after reset, got %d widgets", len(widgets))
	}
}

func TestServiceCatalogUsesRegistryOrder(t *testing.T) {
	service := newTestService(t, Options{})
	catalog := service.Catalog()
	if len(catalog) < len(BuiltinCatalog()) {
		t.Fatalf("expected at least the builtin catalog, got %d entries", len(catalog))
	}
	for i, entry := range BuiltinCatalog() {
		if catalog[i].Type != entry.Type {
			t.Fatalf("catalog order mismatch at %d", i)
		}
	}
}

func TestServiceRenderDashboard(t *testing.T) {
	service := newTestService(t, Options{Locale: "en"})
	views, err := service.RenderDashboard(context.Background(), "alice")
	if err != nil {
		t.Fatalf("RenderDashboard returned error: %v", err)
	}
	if len(views) != len(DefaultLayout()) {
		t.Fatalf("expected %d views, got %d", len(DefaultLayout()), len(views))
	}
	for _, view := range views {
		if view.Status != ViewStatusOK {
			t.Fatalf("expected default widgets to render ok, got %q for %s", view.Status, view.Widget.Type)
		}
	}
}

func TestServiceComposeLayout(t *testing.T) {
	service := newTestService(t, Options{})
	layout, err := service.ComposeLayout(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ComposeLayout returned error: %v", err)
	}
	if layout.Columns != GridColumns {
		t.Fatalf("expected %d columns, got %d", GridColumns, layout.Columns)
	}
	if len(layout.Cells) != len(DefaultLayout()) {
		t.Fatalf("expected %d cells, got %d", len(DefaultLayout()), len(layout.Cells))
	}
}

func TestServiceMutationLoadsPersistedLayoutFirst(t *testing.T) {
	layouts := NewMemoryLayoutStore()
	saved := DefaultLayout()
	if err := layouts.SaveWidgets(context.Background(), "alice", saved); err != nil {
		t.Fatalf("SaveWidgets returned error: %v", err)
	}
	service := newTestService(t, Options{Layouts: layouts})

	added, err := service.AddWidget(context.Background(), "alice", AddWidgetRequest{Type: TypeNewsFeed})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if added.Position != len(saved) {
		t.Fatalf("expected widget appended at %d, got position %d", len(saved), added.Position)
	}
	persisted, err := layouts.LoadWidgets(context.Background(), "alice")
	if err != nil {
		t.Fatalf("LoadWidgets returned error: %v", err)
	}
	if len(persisted) != len(saved)+1 {
		t.Fatalf("expected saved layout preserved, got %d widgets, want %d", len(persisted), len(saved)+1)
	}
}

func TestServiceRemoveLoadsPersistedLayoutFirst(t *testing.T) {
	layouts := NewMemoryLayoutStore()
	saved := DefaultLayout()
	if err := layouts.SaveWidgets(context.Background(), "alice", saved); err != nil {
		t.Fatalf("SaveWidgets returned error: %v", err)
	}
	service := newTestService(t, Options{Layouts: layouts})

	if err := service.RemoveWidget(context.Background(), "alice", saved[0].ID); err != nil {
		t.Fatalf("RemoveWidget returned error: %v", err)
	}
	persisted, err := layouts.LoadWidgets(context.Background(), "alice")
	if err != nil {
		t.Fatalf("LoadWidgets returned error: %v", err)
	}
	if len(persisted) != len(saved)-1 {
		t.Fatalf("expected one widget removed from saved layout, got %d, want %d", len(persisted), len(saved)-1)
	}
}

func TestServiceComposeLayoutSurvivesSeedPersistenceFailure(t *testing.T) {
	layouts := &failingLayoutStore{loadErr: ErrLayoutNotFound, saveErr: errors.New("down")}
	service := newTestService(t, Options{Layouts: layouts})

	layout, err := service.ComposeLayout(context.Background(), "alice")
	if !IsPersistenceFailure(err) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if len(layout.Cells) != len(DefaultLayout()) {
		t.Fatalf("expected %d cells despite failed seed save, got %d", len(DefaultLayout()), len(layout.Cells))
	}
	if layout.Columns == 0 {
		t.Fatalf("expected populated grid, got zero columns")
	}
}

func TestServiceRenderDashboardSurvivesSeedPersistenceFailure(t *testing.T) {
	layouts := &failingLayoutStore{loadErr: ErrLayoutNotFound, saveErr: errors.New("down")}
	service := newTestService(t, Options{Layouts: layouts})

	views, err := service.RenderDashboard(context.Background(), "alice")
	if !IsPersistenceFailure(err) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if len(views) != len(DefaultLayout()) {
		t.Fatalf("expected %d views despite failed seed save, got %d", len(DefaultLayout()), len(views))
	}
}

func TestServicePropagatesPersistenceFailure(t *testing.T) {
	layouts := &failingLayoutStore{loadErr: ErrLayoutNotFound, saveErr: errors.New("down")}
	service := newTestService(t, Options{Layouts: layouts})

	_, err := service.AddWidget(context.Background(), "alice", AddWidgetRequest{Type: TypeNewsFeed})
	if !IsPersistenceFailure(err) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
}

func TestServiceHookSharedAcrossUsers(t *testing.T) {
	hook := &countingHook{}
	service := newTestService(t, Options{Hook: hook})
	ctx := context.Background()

	if _, err := service.AddWidget(ctx, "alice", AddWidgetRequest{Type: TypeNewsFeed}); err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if _, err := service.AddWidget(ctx, "bob", AddWidgetRequest{Type: TypePriceAlerts}); err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if hook.events != 2 {
		t.Fatalf("expected hook invoked for both users, got %d", hook.events)
	}
}
