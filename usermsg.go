package devcontainer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// UserMessenger carries progress and diagnostic notes to the person running
// the tool. It is distinct from the slog logger, which goes to the log file.
type UserMessenger interface {
	Message(ctx context.Context, msg string)
	Messagef(ctx context.Context, format string, args ...any)
}

type terminalMessenger struct {
	writer io.Writer
}

func NewTerminalMessenger(writer io.Writer) UserMessenger {
	return &terminalMessenger{writer: writer}
}

func (tm *terminalMessenger) Message(ctx context.Context, msg string) {
	if tm.writer == nil {
		slog.DebugContext(ctx, "userMsg (no writer)", "msg", msg)
		return
	}
	fmt.Fprintln(tm.writer, "\033[90m"+msg+"\033[0m")
}

func (tm *terminalMessenger) Messagef(ctx context.Context, format string, args ...any) {
	tm.Message(ctx, fmt.Sprintf(format, args...))
}

type nullMessenger struct{}

func NewNullMessenger() UserMessenger {
	return &nullMessenger{}
}

func (nm *nullMessenger) Message(ctx context.Context, msg string) {
	slog.DebugContext(ctx, "userMsg (null messenger)", "msg", msg)
}

func (nm *nullMessenger) Messagef(ctx context.Context, format string, args ...any) {
	nm.Message(ctx, fmt.Sprintf(format, args...))
}
