package devcontainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
)

// Default paths. The host script default lives in the user's home directory;
// container-relative defaults resolve ~ against the container's own $HOME.
const (
	DefaultHostScriptPath = "~/dc-postcommand.sh"
	DefaultMarkerPath     = "~/.dc-post-setup-done"

	// containerScriptDest is where the host script lands inside the container.
	containerScriptDest = "~/.dc-postcommand.sh"
)

// Skip reasons reported in PostSetupResult.
const (
	SkipReasonRequested  = "skip requested"
	SkipReasonNoScript   = "no post script configured"
	SkipReasonAlreadyRun = "already run"
)

// PostSetupConfig controls the one-time bootstrap step. Supplied once per
// invocation; immutable.
type PostSetupConfig struct {
	// HostScriptPath is the host-side script to copy in and run. A leading ~
	// resolves against the host user's home directory.
	HostScriptPath string
	// MarkerPath is the sentinel file inside the container that records a
	// completed run. A leading ~ resolves against the container's $HOME.
	MarkerPath string
	// ForceRerun runs the script even when the marker is present.
	ForceRerun bool
	// Skip bypasses post-setup entirely, with zero container interaction.
	Skip bool
	// Verbose echoes the exec command line before running the script.
	Verbose bool
}

// PostSetupResult reports what Ensure did.
type PostSetupResult struct {
	Ran           bool
	SkippedReason string
}

// PostSetup decides whether the bootstrap script must run, transfers it into
// the container, executes it, and persists completion as a marker file.
//
// Idempotence rests solely on the marker's presence: the marker travels with
// the container's filesystem (surviving restarts, absent after rebuilds) and
// needs no registry on the host. The marker check and the marker write are
// separate exec calls, so two invocations racing on the same container can
// both observe "absent" and both run the script. Accepted for the
// single-user, single-host usage model; no lock guards it.
type PostSetup struct {
	ops    RuntimeOps
	files  FileOps
	msg    UserMessenger
	stdout io.Writer
	stderr io.Writer
}

func NewPostSetup(ops RuntimeOps, files FileOps, msg UserMessenger, stdout, stderr io.Writer) *PostSetup {
	return &PostSetup{ops: ops, files: files, msg: msg, stdout: stdout, stderr: stderr}
}

// Ensure runs the post-setup script in the container if it has not run
// before. Script failures come back as an error with Ran=true and no marker
// written, so the next invocation retries; that is the intended recovery path
// for transient setup failures. The caller bounds execution via ctx.
func (p *PostSetup) Ensure(ctx context.Context, containerID string, cfg PostSetupConfig) (PostSetupResult, error) {
	if cfg.Skip {
		return PostSetupResult{SkippedReason: SkipReasonRequested}, nil
	}

	hostScript, err := p.files.Expand(cfg.HostScriptPath)
	if err != nil {
		return PostSetupResult{}, fmt.Errorf("expanding host script path: %w", err)
	}
	fi, err := p.files.Stat(hostScript)
	if err != nil || fi.IsDir() {
		// Most users never create a post script. Not an error.
		slog.InfoContext(ctx, "PostSetup.Ensure: no host script", "path", hostScript)
		return PostSetupResult{SkippedReason: SkipReasonNoScript}, nil
	}

	marker, err := p.resolveContainerPath(ctx, containerID, cfg.MarkerPath)
	if err != nil {
		return PostSetupResult{}, err
	}

	if !cfg.ForceRerun {
		present, err := p.markerPresent(ctx, containerID, marker)
		if err != nil {
			return PostSetupResult{}, err
		}
		if present {
			p.msg.Messagef(ctx, "[post] already set up (%s)", marker)
			return PostSetupResult{SkippedReason: SkipReasonAlreadyRun}, nil
		}
	}

	dest, err := p.resolveContainerPath(ctx, containerID, containerScriptDest)
	if err != nil {
		return PostSetupResult{}, err
	}

	p.msg.Messagef(ctx, "[post] copying %s -> %s ...", hostScript, dest)
	if _, err := p.ops.Exec(ctx, containerID, "sh", "-lc", fmt.Sprintf("mkdir -p %s", shQuote(path.Dir(dest)))); err != nil {
		return PostSetupResult{}, fmt.Errorf("creating script dir: %w", err)
	}
	if err := p.ops.CopyInto(ctx, containerID, hostScript, dest); err != nil {
		return PostSetupResult{}, fmt.Errorf("copying post script: %w", err)
	}

	shell, err := firstSupportedShell(ctx, p.ops, containerID)
	if err != nil {
		return PostSetupResult{}, err
	}

	runCmd := fmt.Sprintf("chmod +x %s && %s", shQuote(dest), shQuote(dest))
	if cfg.Verbose {
		p.msg.Messagef(ctx, "[post] exec: %s -lc %s", shell, runCmd)
	}
	p.msg.Messagef(ctx, "[post] running post script with %s ...", shell)

	// Scripts run non-interactively; a script that prompts for input is
	// unsupported and will hang until the caller's timeout fires.
	wait, err := p.ops.ExecStream(ctx, containerID, shell, nil, p.stdout, p.stderr, "-lc", runCmd)
	if err != nil {
		return PostSetupResult{}, fmt.Errorf("starting post script: %w", err)
	}
	if err := wait(); err != nil {
		// The script's exit status is the script author's responsibility: no
		// rollback, no retry, and no marker, so the next run tries again.
		p.msg.Messagef(ctx, "[post] post script failed: %v", err)
		return PostSetupResult{Ran: true}, fmt.Errorf("post script failed: %w", err)
	}

	if _, err := p.ops.Exec(ctx, containerID, "sh", "-lc", fmt.Sprintf(": > %s", shQuote(marker))); err != nil {
		slog.ErrorContext(ctx, "PostSetup.Ensure: marker write failed", "marker", marker, "error", err)
		return PostSetupResult{Ran: true}, fmt.Errorf("writing marker: %w", err)
	}
	p.msg.Messagef(ctx, "[post] setup complete. marker: %s", marker)
	return PostSetupResult{Ran: true}, nil
}

// markerPresent is the check half of the marker's check-then-act sequence.
func (p *PostSetup) markerPresent(ctx context.Context, containerID, marker string) (bool, error) {
	_, err := p.ops.Exec(ctx, containerID, "sh", "-lc", fmt.Sprintf("[ -f %s ]", shQuote(marker)))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrRuntimeUnavailable) || errors.Is(err, ErrContainerGone) {
		return false, err
	}
	return false, nil
}

// resolveContainerPath expands a leading ~ against the container's $HOME.
func (p *PostSetup) resolveContainerPath(ctx context.Context, containerID, pathSpec string) (string, error) {
	if !strings.HasPrefix(pathSpec, "~") {
		return pathSpec, nil
	}
	home, err := p.ops.Exec(ctx, containerID, "sh", "-lc", `printf %s "$HOME"`)
	if err != nil {
		return "", fmt.Errorf("resolving container home: %w", err)
	}
	if home == "" {
		home = "/root"
	}
	return home + pathSpec[1:], nil
}

// shQuote single-quotes s for interpolation into an `sh -lc` command string.
func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
