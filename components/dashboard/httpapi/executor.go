package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/rimtoken/go-dashboard/components/dashboard"
	"github.com/rimtoken/go-dashboard/components/dashboard/commands"
)

// Service is the mutation surface *dashboard.Service exposes to transports.
type Service interface {
	AddWidget(ctx context.Context, userID string, req dashboard.AddWidgetRequest) (dashboard.Widget, error)
	RemoveWidget(ctx context.Context, userID, widgetID string) error
	MoveWidgetUp(ctx context.Context, userID, widgetID string) error
	MoveWidgetDown(ctx context.Context, userID, widgetID string) error
	ReorderWidgets(ctx context.Context, userID string, widgets []dashboard.Widget) error
	UpdateWidgetSize(ctx context.Context, userID, widgetID string, size dashboard.WidgetSize) error
	ResetLayout(ctx context.Context, userID string) error
}

var _ Service = (*dashboard.Service)(nil)

// Executor is the command surface transports invoke. Both net/http handlers
// and go-router adapters sit on top of it.
type Executor interface {
	Add(ctx context.Context, msg commands.AddWidgetMessage) error
	Remove(ctx context.Context, msg commands.RemoveWidgetMessage) error
	Move(ctx context.Context, msg commands.MoveWidgetMessage) error
	Reorder(ctx context.Context, msg commands.ReorderWidgetsMessage) error
	Resize(ctx context.Context, msg commands.ResizeWidgetMessage) error
	Reset(ctx context.Context, msg commands.ResetLayoutMessage) error
}

// CommandExecutor bundles the widget commands behind the Executor interface.
type CommandExecutor struct {
	AddCmd     gocommand.Commander[commands.AddWidgetMessage]
	RemoveCmd  gocommand.Commander[commands.RemoveWidgetMessage]
	MoveCmd    gocommand.Commander[commands.MoveWidgetMessage]
	ReorderCmd gocommand.Commander[commands.ReorderWidgetsMessage]
	ResizeCmd  gocommand.Commander[commands.ResizeWidgetMessage]
	ResetCmd   gocommand.Commander[commands.ResetLayoutMessage]
}

var errCommandMissing = errors.New("httpapi: command not configured")

func (e *CommandExecutor) Add(ctx context.Context, msg commands.AddWidgetMessage) error {
	if e.AddCmd == nil {
		return errCommandMissing
	}
	return e.AddCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Remove(ctx context.Context, msg commands.RemoveWidgetMessage) error {
	if e.RemoveCmd == nil {
		return errCommandMissing
	}
	return e.RemoveCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Move(ctx context.Context, msg commands.MoveWidgetMessage) error {
	if e.MoveCmd == nil {
		return errCommandMissing
	}
	return e.MoveCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Reorder(ctx context.Context, msg commands.ReorderWidgetsMessage) error {
	if e.ReorderCmd == nil {
		return errCommandMissing
	}
	return e.ReorderCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Resize(ctx context.Context, msg commands.ResizeWidgetMessage) error {
	if e.ResizeCmd == nil {
		return errCommandMissing
	}
	return e.ResizeCmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Reset(ctx context.Context, msg commands.ResetLayoutMessage) error {
	if e.ResetCmd == nil {
		return errCommandMissing
	}
	return e.ResetCmd.Execute(ctx, msg)
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor builds an executor over a service, wiring every widget
// command with the shared telemetry.
func NewCommandExecutor(service Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		AddCmd:     commands.NewAddWidgetCommand(service, telemetry),
		RemoveCmd:  commands.NewRemoveWidgetCommand(service, telemetry),
		MoveCmd:    commands.NewMoveWidgetCommand(service, telemetry),
		ReorderCmd: commands.NewReorderWidgetsCommand(service, telemetry),
		ResizeCmd:  commands.NewResizeWidgetCommand(service, telemetry),
		ResetCmd:   commands.NewResetLayoutCommand(service, telemetry),
	}
}
