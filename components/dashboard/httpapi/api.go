// Package httpapi exposes the widget operations as framework-free HTTP
// handlers backed by shared commands.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/rimtoken/go-dashboard/components/dashboard"
	"github.com/rimtoken/go-dashboard/components/dashboard/commands"
)

// LayoutReader is the query surface handlers need from the service.
type LayoutReader interface {
	Widgets(ctx context.Context, userID string) ([]dashboard.Widget, error)
	RenderDashboard(ctx context.Context, userID string) ([]dashboard.WidgetView, error)
	Catalog() []dashboard.CatalogEntry
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Layouts LayoutReader
	Add     gocommand.Commander[commands.AddWidgetMessage]
	Remove  gocommand.Commander[commands.RemoveWidgetMessage]
	Move    gocommand.Commander[commands.MoveWidgetMessage]
	Reorder gocommand.Commander[commands.ReorderWidgetsMessage]
	Resize  gocommand.Commander[commands.ResizeWidgetMessage]
	Reset   gocommand.Commander[commands.ResetLayoutMessage]
}

// HandleListWidgets returns the user's widget list in display order.
func (h *Handlers) HandleListWidgets(w http.ResponseWriter, r *http.Request, userID string) {
	widgets, err := h.Layouts.Widgets(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"widgets": widgets})
}

// HandleRenderDashboard returns rendered tiles for the user.
func (h *Handlers) HandleRenderDashboard(w http.ResponseWriter, r *http.Request, userID string) {
	views, err := h.Layouts.RenderDashboard(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"views": views})
}

// HandleCatalog lists the widget types available to add.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"catalog": h.Layouts.Catalog()})
}

// HandleAddWidget creates a widget from the JSON body.
func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request, userID string) {
	var payload dashboard.AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Add.Execute(r.Context(), commands.AddWidgetMessage{UserID: userID, Widget: payload}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleRemoveWidget removes the widget with the given id.
func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, userID, widgetID string) {
	msg := commands.RemoveWidgetMessage{UserID: userID, WidgetID: widgetID}
	if err := h.Remove.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMoveWidget nudges a widget up or down.
func (h *Handlers) HandleMoveWidget(w http.ResponseWriter, r *http.Request, userID, widgetID string) {
	var payload struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	msg := commands.MoveWidgetMessage{UserID: userID, WidgetID: widgetID, Direction: payload.Direction}
	if err := h.Move.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleReorderWidgets replaces the user's list wholesale.
func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request, userID string) {
	var payload struct {
		Widgets []dashboard.Widget `json:"widgets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	msg := commands.ReorderWidgetsMessage{UserID: userID, Widgets: payload.Widgets}
	if err := h.Reorder.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleResizeWidget changes a widget's column span.
func (h *Handlers) HandleResizeWidget(w http.ResponseWriter, r *http.Request, userID, widgetID string) {
	var payload struct {
		Size dashboard.WidgetSize `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	msg := commands.ResizeWidgetMessage{UserID: userID, WidgetID: widgetID, Size: payload.Size}
	if err := h.Resize.Execute(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleResetLayout restores the default widgets.
func (h *Handlers) HandleResetLayout(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.Reset.Execute(r.Context(), commands.ResetLayoutMessage{UserID: userID}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrInvalidWidgetType), errors.Is(err, dashboard.ErrInvalidWidgetSize):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case dashboard.IsPersistenceFailure(err):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
