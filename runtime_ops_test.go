package devcontainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"testing"

	"github.com/sveint/devcontainer-enter/docker/types"
)

type mockRuntimeOps struct {
	listFunc        func(ctx context.Context) ([]types.PSEntry, error)
	inspectFunc     func(ctx context.Context, id ...string) ([]types.ContainerDetail, error)
	execFunc        func(ctx context.Context, containerID, command string, args ...string) (string, error)
	execStreamFunc  func(ctx context.Context, containerID, command string, stdin io.Reader, stdout, stderr io.Writer, args ...string) (func() error, error)
	copyIntoFunc    func(ctx context.Context, containerID, hostPath, containerPath string) error
	execReplaceFunc func(containerID, command string, args ...string) error
}

func (m *mockRuntimeOps) ListRunning(ctx context.Context) ([]types.PSEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockRuntimeOps) Inspect(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
	if m.inspectFunc != nil {
		return m.inspectFunc(ctx, id...)
	}
	return []types.ContainerDetail{{}}, nil
}

func (m *mockRuntimeOps) Exec(ctx context.Context, containerID, command string, args ...string) (string, error) {
	if m.execFunc != nil {
		return m.execFunc(ctx, containerID, command, args...)
	}
	return "", nil
}

func (m *mockRuntimeOps) ExecStream(ctx context.Context, containerID, command string, stdin io.Reader, stdout, stderr io.Writer, args ...string) (func() error, error) {
	if m.execStreamFunc != nil {
		return m.execStreamFunc(ctx, containerID, command, stdin, stdout, stderr, args...)
	}
	return func() error { return nil }, nil
}

func (m *mockRuntimeOps) CopyInto(ctx context.Context, containerID, hostPath, containerPath string) error {
	if m.copyIntoFunc != nil {
		return m.copyIntoFunc(ctx, containerID, hostPath, containerPath)
	}
	return nil
}

func (m *mockRuntimeOps) ExecReplace(containerID, command string, args ...string) error {
	if m.execReplaceFunc != nil {
		return m.execReplaceFunc(containerID, command, args...)
	}
	return nil
}

// exitErrWithStderr produces a real *exec.ExitError with Stderr captured,
// which is what the docker package hands up on a nonzero exit.
func exitErrWithStderr(t *testing.T, stderr string) error {
	t.Helper()
	cmd := exec.Command("sh", "-c", "echo \""+stderr+"\" >&2; exit 1")
	_, err := cmd.Output()
	if err == nil {
		t.Fatal("expected command to fail")
	}
	return err
}

func TestClassifyRuntimeErr(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if err := classifyRuntimeErr(nil); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("binary missing", func(t *testing.T) {
		_, err := exec.Command("no-such-binary-devcontainer-enter-test").Output()
		got := classifyRuntimeErr(err)
		if !errors.Is(got, ErrRuntimeUnavailable) {
			t.Errorf("expected ErrRuntimeUnavailable, got %v", got)
		}
	})

	t.Run("container gone", func(t *testing.T) {
		err := exitErrWithStderr(t, "Error response from daemon: No such container: deadbeef")
		got := classifyRuntimeErr(err)
		if !errors.Is(got, ErrContainerGone) {
			t.Errorf("expected ErrContainerGone, got %v", got)
		}
	})

	t.Run("daemon unreachable", func(t *testing.T) {
		err := exitErrWithStderr(t, "Cannot connect to the Docker daemon at unix:///var/run/docker.sock.")
		got := classifyRuntimeErr(err)
		if !errors.Is(got, ErrRuntimeUnavailable) {
			t.Errorf("expected ErrRuntimeUnavailable, got %v", got)
		}
	})

	t.Run("wrapped copy failure still classifies", func(t *testing.T) {
		// CopyTo wraps the ExitError; the stderr match must see through it.
		err := fmt.Errorf("docker cp failed: %w",
			exitErrWithStderr(t, "Error response from daemon: No such container: deadbeef"))
		got := classifyRuntimeErr(err)
		if !errors.Is(got, ErrContainerGone) {
			t.Errorf("expected ErrContainerGone, got %v", got)
		}
	})

	t.Run("plain nonzero exit passes through", func(t *testing.T) {
		err := exitErrWithStderr(t, "")
		got := classifyRuntimeErr(err)
		if errors.Is(got, ErrRuntimeUnavailable) || errors.Is(got, ErrContainerGone) {
			t.Errorf("probe-style exit should pass through unclassified, got %v", got)
		}
		var exitErr *exec.ExitError
		if !errors.As(got, &exitErr) {
			t.Errorf("expected the original *exec.ExitError, got %T", got)
		}
	})
}
