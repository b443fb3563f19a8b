package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetMessage identifies the widget to remove.
type RemoveWidgetMessage struct {
	UserID   string `json:"user_id"`
	WidgetID string `json:"widget_id"`
}

type removeService interface {
	RemoveWidget(ctx context.Context, userID, widgetID string) error
}

// RemoveWidgetCommand wraps Service.RemoveWidget.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand creates a command instance.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetMessage] = (*RemoveWidgetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetMessage) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("remove command requires widget id")
	}
	if err := c.service.RemoveWidget(ctx, msg.UserID, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.remove", map[string]any{
		"user_id":   msg.UserID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
