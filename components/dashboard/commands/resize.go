package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/rimtoken/go-dashboard/components/dashboard"
)

// ResizeWidgetMessage changes a widget's column span.
type ResizeWidgetMessage struct {
	UserID   string               `json:"user_id"`
	WidgetID string               `json:"widget_id"`
	Size     dashboard.WidgetSize `json:"size"`
}

type resizeService interface {
	UpdateWidgetSize(ctx context.Context, userID, widgetID string, size dashboard.WidgetSize) error
}

// ResizeWidgetCommand wraps Service.UpdateWidgetSize.
type ResizeWidgetCommand struct {
	service   resizeService
	telemetry Telemetry
}

// NewResizeWidgetCommand creates a command instance.
func NewResizeWidgetCommand(service resizeService, telemetry Telemetry) *ResizeWidgetCommand {
	return &ResizeWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeWidgetMessage] = (*ResizeWidgetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *ResizeWidgetCommand) Execute(ctx context.Context, msg ResizeWidgetMessage) error {
	if c.service == nil {
		return errors.New("resize command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("resize command requires widget id")
	}
	if err := c.service.UpdateWidgetSize(ctx, msg.UserID, msg.WidgetID, msg.Size); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.resize", map[string]any{
		"user_id":   msg.UserID,
		"widget_id": msg.WidgetID,
		"size":      string(msg.Size),
	})
	return nil
}
