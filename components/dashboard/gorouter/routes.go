// Package gorouter mounts the dashboard endpoints on a go-router router so
// fiber and httprouter applications share one registration path.
package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/rimtoken/go-dashboard/components/dashboard"
	"github.com/rimtoken/go-dashboard/components/dashboard/commands"
	"github.com/rimtoken/go-dashboard/components/dashboard/httpapi"
)

// Viewer identifies the requesting user and their display locale.
type Viewer struct {
	UserID string
	Locale string
}

// ViewerResolver extracts the viewer from a router.Context.
type ViewerResolver func(router.Context) Viewer

// Config wires go-router with the dashboard service, commands, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Service        *dashboard.Service
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	Layout    string
	Widgets   string
	WidgetID  string
	Move      string
	Resize    string
	Reorder   string
	Reset     string
	Catalog   string
	WebSocket string
}

// Register mounts dashboard routes (JSON, REST, WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/dashboard"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		layout, err := cfg.Service.ComposeLayout(ctx.Context(), viewer.UserID)
		if err != nil && !dashboard.IsPersistenceFailure(err) {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, layout)
	}))

	group.Get(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		widgets, err := cfg.Service.Widgets(ctx.Context(), viewer.UserID)
		if err != nil && !dashboard.IsPersistenceFailure(err) {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"widgets": widgets})
	}))

	group.Get(routes.Catalog, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, map[string]any{"catalog": cfg.Service.Catalog()})
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.AddWidgetRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		viewer := resolver(ctx)
		if err := api.Add(ctx.Context(), commands.AddWidgetMessage{UserID: viewer.UserID, Widget: payload}); err != nil {
			return respondCommandError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		viewer := resolver(ctx)
		if err := api.Remove(ctx.Context(), commands.RemoveWidgetMessage{UserID: viewer.UserID, WidgetID: id}); err != nil {
			return respondCommandError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Move, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Direction string `json:"direction"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		viewer := resolver(ctx)
		msg := commands.MoveWidgetMessage{
			UserID:    viewer.UserID,
			WidgetID:  ctx.Param("id"),
			Direction: payload.Direction,
		}
		if err := api.Move(ctx.Context(), msg); err != nil {
			return respondCommandError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.Resize, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Size dashboard.WidgetSize `json:"size"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		viewer := resolver(ctx)
		msg := commands.ResizeWidgetMessage{
			UserID:   viewer.UserID,
			WidgetID: ctx.Param("id"),
			Size:     payload.Size,
		}
		if err := api.Resize(ctx.Context(), msg); err != nil {
			return respondCommandError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "resized"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Widgets []dashboard.Widget `json:"widgets"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		viewer := resolver(ctx)
		msg := commands.ReorderWidgetsMessage{UserID: viewer.UserID, Widgets: payload.Widgets}
		if err := api.Reorder(ctx.Context(), msg); err != nil {
			return respondCommandError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		viewer := resolver(ctx)
		if err := api.Reset(ctx.Context(), commands.ResetLayoutMessage{UserID: viewer.UserID}); err != nil {
			return respondCommandError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) Viewer {
	var viewer Viewer
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondCommandError(ctx router.Context, err error) error {
	switch {
	case errors.Is(err, dashboard.ErrInvalidWidgetType), errors.Is(err, dashboard.ErrInvalidWidgetSize):
		return respondError(ctx, http.StatusBadRequest, err)
	case dashboard.IsPersistenceFailure(err):
		return respondError(ctx, http.StatusBadGateway, err)
	default:
		return respondError(ctx, http.StatusInternalServerError, err)
	}
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Layout == "" {
		routes.Layout = "/layout"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/widgets/:id"
	}
	if routes.Move == "" {
		routes.Move = "/widgets/:id/move"
	}
	if routes.Resize == "" {
		routes.Resize = "/widgets/:id/resize"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/widgets/reorder"
	}
	if routes.Reset == "" {
		routes.Reset = "/widgets/reset"
	}
	if routes.Catalog == "" {
		routes.Catalog = "/catalog"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
