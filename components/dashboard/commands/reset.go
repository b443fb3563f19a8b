package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ResetLayoutMessage restores a user's dashboard to the default widgets.
type ResetLayoutMessage struct {
	UserID string `json:"user_id"`
}

type resetService interface {
	ResetLayout(ctx context.Context, userID string) error
}

// ResetLayoutCommand wraps Service.ResetLayout.
type ResetLayoutCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetLayoutCommand creates a command instance.
func NewResetLayoutCommand(service resetService, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutMessage] = (*ResetLayoutCommand)(nil)

// Execute delegates to the dashboard service.
func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutMessage) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	if err := c.service.ResetLayout(ctx, msg.UserID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reset", map[string]any{"user_id": msg.UserID})
	return nil
}
