package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
)

// Move directions accepted by MoveWidgetMessage.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// MoveWidgetMessage nudges a widget one slot up or down in display order.
type MoveWidgetMessage struct {
	UserID    string `json:"user_id"`
	WidgetID  string `json:"widget_id"`
	Direction string `json:"direction"`
}

type moveService interface {
	MoveWidgetUp(ctx context.Context, userID, widgetID string) error
	MoveWidgetDown(ctx context.Context, userID, widgetID string) error
}

// MoveWidgetCommand wraps the service move operations.
type MoveWidgetCommand struct {
	service   moveService
	telemetry Telemetry
}

// NewMoveWidgetCommand creates a command instance.
func NewMoveWidgetCommand(service moveService, telemetry Telemetry) *MoveWidgetCommand {
	return &MoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveWidgetMessage] = (*MoveWidgetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *MoveWidgetCommand) Execute(ctx context.Context, msg MoveWidgetMessage) error {
	if c.service == nil {
		return errors.New("move command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("move command requires widget id")
	}
	var err error
	switch msg.Direction {
	case DirectionUp:
		err = c.service.MoveWidgetUp(ctx, msg.UserID, msg.WidgetID)
	case DirectionDown:
		err = c.service.MoveWidgetDown(ctx, msg.UserID, msg.WidgetID)
	default:
		return fmt.Errorf("move command: unknown direction %q", msg.Direction)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.move", map[string]any{
		"user_id":   msg.UserID,
		"widget_id": msg.WidgetID,
		"direction": msg.Direction,
	})
	return nil
}
