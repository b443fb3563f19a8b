package voice

import (
	"context"
	"errors"
	"fmt"

	"github.com/rimtoken/go-dashboard/components/dashboard"
)

// Mutator is the surface the interpreter needs from the widget store.
// *dashboard.Store satisfies it.
type Mutator interface {
	Add(ctx context.Context, req dashboard.AddWidgetRequest) (dashboard.Widget, error)
	Remove(ctx context.Context, id string) error
	ResetToDefault(ctx context.Context) error
	WidgetIDs() []string
}

var _ Mutator = (*dashboard.Store)(nil)

// Result is the user-facing outcome of one transcript: the classified
// command, whether it mutated the dashboard, and the feedback strings in the
// transcript's language.
type Result struct {
	Command  Command
	Executed bool
	Title    string
	Detail   string
}

// Interpreter turns classified commands into store mutations and localized
// feedback. Rejected commands (unknown type, bad index) never mutate.
type Interpreter struct {
	store     Mutator
	telemetry dashboard.Telemetry
}

// NewInterpreter builds an interpreter over the given store.
func NewInterpreter(store Mutator, telemetry dashboard.Telemetry) (*Interpreter, error) {
	if store == nil {
		return nil, errors.New("dashboard: voice interpreter requires a store")
	}
	return &Interpreter{
		store:     store,
		telemetry: dashboard.TelemetryOrNoop(telemetry),
	}, nil
}

// Handle classifies and executes one transcript. The returned error is
// non-nil only when the store mutation itself failed; classification
// rejections come back as non-executed Results.
func (i *Interpreter) Handle(ctx context.Context, transcript string, lang Language) (Result, error) {
	cmd := Classify(transcript, lang)
	i.telemetry.Record(ctx, "dashboard.voice.command", map[string]any{
		"kind":     cmd.Kind.String(),
		"language": string(lang),
	})
	switch cmd.Kind {
	case KindAdd:
		return i.handleAdd(ctx, cmd)
	case KindRemove:
		return i.handleRemove(ctx, cmd)
	case KindReset:
		return i.handleReset(ctx, cmd)
	case KindHelp:
		return i.handleHelp(cmd), nil
	default:
		return i.handleUnrecognized(cmd), nil
	}
}

func (i *Interpreter) handleAdd(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Type == "" {
		return Result{
			Command: cmd,
			Title:   pick(cmd.Language, "لم يتم التعرف على نوع العنصر", "Widget type not recognized"),
			Detail: pick(cmd.Language,
				`يرجى تحديد نوع العنصر مثل "ملخص" أو "مخطط" أو "أصول"`,
				`Please specify widget type like "summary", "chart", or "assets"`),
		}, nil
	}
	widget, err := i.store.Add(ctx, dashboard.AddWidgetRequest{Type: cmd.Type, Size: cmd.Size})
	if err != nil && !dashboard.IsPersistenceFailure(err) {
		return Result{Command: cmd}, err
	}
	result := Result{
		Command:  cmd,
		Executed: true,
		Title:    pick(cmd.Language, "تم إضافة عنصر جديد", "Widget added"),
	}
	if cmd.Language == Arabic {
		result.Detail = fmt.Sprintf("تم إضافة %s بحجم %s", widget.Type, widget.Size)
	} else {
		result.Detail = fmt.Sprintf("Added %s with %s size", widget.Type, widget.Size)
	}
	return result, err
}

func (i *Interpreter) handleRemove(ctx context.Context, cmd Command) (Result, error) {
	if !cmd.HasIndex {
		return Result{
			Command: cmd,
			Title:   pick(cmd.Language, "لم يتم تحديد رقم العنصر", "Widget number not specified"),
			Detail: pick(cmd.Language,
				"يرجى ذكر رقم العنصر الذي تريد حذفه",
				"Please specify the widget number you want to remove"),
		}, nil
	}
	ids := i.store.WidgetIDs()
	if cmd.Index < 1 || cmd.Index > len(ids) {
		result := Result{
			Command: cmd,
			Title:   pick(cmd.Language, "رقم العنصر غير صالح", "Invalid widget number"),
		}
		if cmd.Language == Arabic {
			result.Detail = fmt.Sprintf("يرجى تحديد رقم بين 1 و %d", len(ids))
		} else {
			result.Detail = fmt.Sprintf("Please specify a number between 1 and %d", len(ids))
		}
		return result, nil
	}
	err := i.store.Remove(ctx, ids[cmd.Index-1])
	if err != nil && !dashboard.IsPersistenceFailure(err) {
		return Result{Command: cmd}, err
	}
	result := Result{
		Command:  cmd,
		Executed: true,
		Title:    pick(cmd.Language, "تم حذف العنصر", "Widget removed"),
	}
	if cmd.Language == Arabic {
		result.Detail = fmt.Sprintf("تم حذف العنصر رقم %d", cmd.Index)
	} else {
		result.Detail = fmt.Sprintf("Removed widget #%d", cmd.Index)
	}
	return result, err
}

func (i *Interpreter) handleReset(ctx context.Context, cmd Command) (Result, error) {
	err := i.store.ResetToDefault(ctx)
	if err != nil && !dashboard.IsPersistenceFailure(err) {
		return Result{Command: cmd}, err
	}
	return Result{
		Command:  cmd,
		Executed: true,
		Title:    pick(cmd.Language, "تم إعادة تعيين لوحة المعلومات", "Dashboard reset"),
		Detail: pick(cmd.Language,
			"تم إعادة تعيين لوحة المعلومات إلى الإعدادات الافتراضية",
			"Dashboard has been reset to default settings"),
	}, err
}

func (i *Interpreter) handleHelp(cmd Command) Result {
	return Result{
		Command: cmd,
		Title:   pick(cmd.Language, "الأوامر الصوتية المتاحة", "Available voice commands"),
		Detail: pick(cmd.Language,
			"أضف [نوع العنصر] [الحجم]: لإضافة عنصر جديد\n"+
				"احذف [رقم العنصر]: لحذف عنصر\n"+
				"إعادة تعيين: لإعادة تعيين لوحة المعلومات",
			"Add [widget type] [size]: to add a new widget\n"+
				"Remove [widget number]: to remove a widget\n"+
				"Reset: to reset dashboard to default"),
	}
}

func (i *Interpreter) handleUnrecognized(cmd Command) Result {
	return Result{
		Command: cmd,
		Title:   pick(cmd.Language, "أمر غير معروف", "Unknown command"),
		Detail: pick(cmd.Language,
			`لم يتم التعرف على الأمر. جرب "مساعدة" للحصول على قائمة بالأوامر المتاحة`,
			`Command not recognized. Try "help" for a list of available commands`),
	}
}

func pick(lang Language, arabic, english string) string {
	if lang == English {
		return english
	}
	return arabic
}
