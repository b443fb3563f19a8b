package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/rimtoken/go-dashboard/components/dashboard"
)

// AddWidgetMessage is the transport-level request to add a widget to a user's
// dashboard.
type AddWidgetMessage struct {
	UserID string                     `json:"user_id"`
	Widget dashboard.AddWidgetRequest `json:"widget"`
}

type addService interface {
	AddWidget(ctx context.Context, userID string, req dashboard.AddWidgetRequest) (dashboard.Widget, error)
}

// AddWidgetCommand wraps Service.AddWidget so transports can invoke widget
// creation without linking directly against the service.
type AddWidgetCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddWidgetCommand creates a command instance.
func NewAddWidgetCommand(service addService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetMessage] = (*AddWidgetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetMessage) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	widget, err := c.service.AddWidget(ctx, msg.UserID, msg.Widget)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.add", map[string]any{
		"user_id":   msg.UserID,
		"widget_id": widget.ID,
		"type":      string(widget.Type),
	})
	return nil
}
