// package docker shells out to the `docker` CLI and decodes its JSON output.
// It is the only package that talks to the container engine.
package docker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/sveint/devcontainer-enter/docker/options"
	"github.com/sveint/devcontainer-enter/docker/types"
)

type ContainerSvc struct{}

// Containers is a service interface to interact with docker containers.
var Containers ContainerSvc

// List returns containers as reported by `docker ps`, in the engine's native
// listing order.
func (c *ContainerSvc) List(ctx context.Context, opts options.PS) ([]types.PSEntry, error) {
	args := append([]string{"ps"}, options.ToArgs(opts)...)
	args = append(args, "--format", "{{json .}}")
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	// `docker ps --format '{{json .}}'` emits one JSON object per line.
	var entries []types.PSEntry
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry types.PSEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("decoding `docker ps` line %q: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// Inspect returns details about the requested container IDs, or an error.
func (c *ContainerSvc) Inspect(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
	cmd := exec.CommandContext(ctx, "docker", append([]string{"inspect"}, id...)...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	rawJSON, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	ret := []types.ContainerDetail{}
	if err := json.Unmarshal(rawJSON, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Exec executes a command in a running container instance and returns its
// captured stdout. A nonzero exit comes back as an *exec.ExitError with
// Stderr populated.
func (c *ContainerSvc) Exec(ctx context.Context, opts options.ExecContainer, containerID, command string, cmdArgs ...string) (string, error) {
	args := options.ToArgs(opts)
	args = append(args, append([]string{containerID, command}, cmdArgs...)...)
	cmd := exec.CommandContext(ctx, "docker", append([]string{"exec"}, args...)...)
	slog.DebugContext(ctx, "ContainerSvc.Exec", "cmd", strings.Join(cmd.Args, " "))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// ExecStream executes a command in a running container instance, streaming
// its output. It returns a wait func that blocks on the command's completion.
// Cancellation of ctx signals the child's whole process group so nothing is
// left orphaned inside the container.
func (c *ContainerSvc) ExecStream(ctx context.Context, opts options.ExecContainer, containerID, command string, stdin io.Reader, stdout, stderr io.Writer, cmdArgs ...string) (func() error, error) {
	args := options.ToArgs(opts)
	args = append(args, append([]string{containerID, command}, cmdArgs...)...)
	cmd := exec.CommandContext(ctx, "docker", append([]string{"exec"}, args...)...)
	slog.InfoContext(ctx, "ContainerSvc.ExecStream", "cmd", strings.Join(cmd.Args, " "))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	stdinFile, isFile := stdin.(*os.File)
	if stdin == nil || (isFile && term.IsTerminal(int(stdinFile.Fd()))) || !isFile {
		cmd.Stdin = stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			return nil, err
		}
	} else {
		// Non-terminal file stdin: run under a pseudo-terminal so programs
		// that insist on a tty still behave.
		slog.InfoContext(ctx, "ContainerSvc.ExecStream: using pseudo-terminal")
		ptmx, err := pty.Start(cmd)
		if err != nil {
			return nil, err
		}
		go func() {
			io.Copy(ptmx, stdin)
		}()
		go func() {
			io.Copy(stdout, ptmx)
			ptmx.Close()
		}()
	}

	return cmd.Wait, nil
}

// CopyTo copies a host file into a container path via `docker cp`.
// Output() keeps stderr on the ExitError so failures stay classifiable.
func (c *ContainerSvc) CopyTo(ctx context.Context, containerID, hostPath, containerPath string) error {
	cmd := exec.CommandContext(ctx, "docker", "cp", hostPath, containerID+":"+containerPath)
	slog.InfoContext(ctx, "ContainerSvc.CopyTo", "cmd", strings.Join(cmd.Args, " "))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if _, err := cmd.Output(); err != nil {
		return fmt.Errorf("docker cp failed: %w", err)
	}
	return nil
}

// ExecReplace replaces the current process with `docker exec -it <id> <command>`.
// On success it never returns; job control, signals and terminal sizing are
// then entirely the exec'd shell's business.
func (c *ContainerSvc) ExecReplace(containerID, command string, cmdArgs ...string) error {
	dockerPath, err := exec.LookPath("docker")
	if err != nil {
		return err
	}
	argv := append([]string{"docker", "exec", "-it", containerID, command}, cmdArgs...)
	slog.Info("ContainerSvc.ExecReplace", "cmd", strings.Join(argv, " "))
	return syscall.Exec(dockerPath, argv, os.Environ())
}
