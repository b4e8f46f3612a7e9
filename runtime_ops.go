package devcontainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sveint/devcontainer-enter/docker"
	"github.com/sveint/devcontainer-enter/docker/options"
	"github.com/sveint/devcontainer-enter/docker/types"
)

// RuntimeOps is the seam between this package's logic and the container
// engine. Everything above it is pure logic over the data it returns.
type RuntimeOps interface {
	// ListRunning returns the engine's running containers in its native
	// listing order.
	ListRunning(ctx context.Context) ([]types.PSEntry, error)
	// Inspect returns full details for the given container IDs.
	Inspect(ctx context.Context, id ...string) ([]types.ContainerDetail, error)
	// Exec runs a non-interactive command in a container and returns its
	// captured stdout.
	Exec(ctx context.Context, containerID, command string, args ...string) (string, error)
	// ExecStream runs a command in a container with streamed output,
	// returning a wait func that blocks on completion.
	ExecStream(ctx context.Context, containerID, command string, stdin io.Reader, stdout, stderr io.Writer, args ...string) (func() error, error)
	// CopyInto copies a host file into a container path.
	CopyInto(ctx context.Context, containerID, hostPath, containerPath string) error
	// ExecReplace replaces the current process with an interactive exec into
	// the container. On success it never returns.
	ExecReplace(containerID, command string, args ...string) error
}

type dockerRuntimeOps struct{}

// NewDockerRuntimeOps returns a RuntimeOps backed by the local docker CLI.
func NewDockerRuntimeOps() RuntimeOps {
	return &dockerRuntimeOps{}
}

func (d *dockerRuntimeOps) ListRunning(ctx context.Context) ([]types.PSEntry, error) {
	entries, err := docker.Containers.List(ctx, options.PS{})
	if err != nil {
		return nil, classifyRuntimeErr(err)
	}
	return entries, nil
}

func (d *dockerRuntimeOps) Inspect(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
	details, err := docker.Containers.Inspect(ctx, id...)
	if err != nil {
		return nil, classifyRuntimeErr(err)
	}
	return details, nil
}

func (d *dockerRuntimeOps) Exec(ctx context.Context, containerID, command string, args ...string) (string, error) {
	out, err := docker.Containers.Exec(ctx, options.ExecContainer{}, containerID, command, args...)
	if err != nil {
		return out, classifyRuntimeErr(err)
	}
	return out, nil
}

func (d *dockerRuntimeOps) ExecStream(ctx context.Context, containerID, command string, stdin io.Reader, stdout, stderr io.Writer, args ...string) (func() error, error) {
	wait, err := docker.Containers.ExecStream(ctx, options.ExecContainer{Interactive: true}, containerID, command, stdin, stdout, stderr, args...)
	if err != nil {
		return nil, classifyRuntimeErr(err)
	}
	return func() error {
		return classifyRuntimeErr(wait())
	}, nil
}

func (d *dockerRuntimeOps) CopyInto(ctx context.Context, containerID, hostPath, containerPath string) error {
	return classifyRuntimeErr(docker.Containers.CopyTo(ctx, containerID, hostPath, containerPath))
}

func (d *dockerRuntimeOps) ExecReplace(containerID, command string, args ...string) error {
	return classifyRuntimeErr(docker.Containers.ExecReplace(containerID, command, args...))
}

// classifyRuntimeErr maps raw engine errors onto the package taxonomy.
// Errors that are neither "engine unreachable" nor "container gone" pass
// through unchanged: a nonzero exit from an exec'd probe is often just the
// probe's answer, not a fault.
func classifyRuntimeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrRuntimeUnavailable, err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		switch {
		case strings.Contains(stderr, "No such container"):
			return fmt.Errorf("%w: %s", ErrContainerGone, firstLine(stderr))
		case strings.Contains(stderr, "Cannot connect to the Docker daemon"),
			strings.Contains(stderr, "Is the docker daemon running"):
			return fmt.Errorf("%w: %s", ErrRuntimeUnavailable, firstLine(stderr))
		}
	}
	return err
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
