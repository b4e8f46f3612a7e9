package devcontainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// preferredShells is the attach/exec order: richer shell first, minimal
// fallback last.
var preferredShells = []string{"bash", "sh"}

// firstSupportedShell probes the preferred shells inside the container and
// returns the first one that is executable there.
func firstSupportedShell(ctx context.Context, ops RuntimeOps, containerID string) (string, error) {
	for _, shell := range preferredShells {
		ok, err := containerSupports(ctx, ops, containerID, shell)
		if err != nil {
			return "", err
		}
		if ok {
			return shell, nil
		}
	}
	return "", fmt.Errorf("%w: tried %v", ErrShellUnavailable, preferredShells)
}

// containerSupports reports whether cmd resolves to an executable inside the
// container. A nonzero exit from the probe means "no"; engine-class errors
// propagate.
func containerSupports(ctx context.Context, ops RuntimeOps, containerID, cmd string) (bool, error) {
	_, err := ops.Exec(ctx, containerID, "sh", "-lc", fmt.Sprintf("command -v %s >/dev/null 2>&1", cmd))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrRuntimeUnavailable) || errors.Is(err, ErrContainerGone) {
		return false, err
	}
	return false, nil
}

// ShellLauncher attaches an interactive shell inside a resolved container by
// replacing the current process. On success Attach never returns.
type ShellLauncher struct {
	ops RuntimeOps
}

func NewShellLauncher(ops RuntimeOps) *ShellLauncher {
	return &ShellLauncher{ops: ops}
}

// Attach picks the first supported shell and execs into it interactively.
// It returns only on failure.
func (l *ShellLauncher) Attach(ctx context.Context, containerID string) error {
	shell, err := firstSupportedShell(ctx, l.ops, containerID)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "ShellLauncher.Attach", "container", containerID, "shell", shell)
	return l.ops.ExecReplace(containerID, shell)
}
