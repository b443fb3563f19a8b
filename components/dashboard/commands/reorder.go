package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/rimtoken/go-dashboard/components/dashboard"
)

// ReorderWidgetsMessage replaces a user's widget list wholesale, typically
// after a drag-and-drop on the client.
type ReorderWidgetsMessage struct {
	UserID  string             `json:"user_id"`
	Widgets []dashboard.Widget `json:"widgets"`
}

type reorderService interface {
	ReorderWidgets(ctx context.Context, userID string, widgets []dashboard.Widget) error
}

// ReorderWidgetsCommand wraps Service.ReorderWidgets.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderWidgetsCommand creates a command instance.
func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsMessage] = (*ReorderWidgetsCommand)(nil)

// Execute delegates to the dashboard service.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsMessage) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if err := c.service.ReorderWidgets(ctx, msg.UserID, msg.Widgets); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reorder", map[string]any{
		"user_id": msg.UserID,
		"count":   len(msg.Widgets),
	})
	return nil
}
