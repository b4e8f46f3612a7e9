package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	devcontainer "github.com/sveint/devcontainer-enter"
)

type EnterCmd struct {
	Index       *int          `arg:"" optional:"" placeholder:"<index>" help:"1-based index of the devcontainer to enter (from the displayed list)"`
	Postscript  string        `default:"~/dc-postcommand.sh" placeholder:"<host-path>" help:"host post-setup script to run once inside the container"`
	Marker      string        `default:"~/.dc-post-setup-done" placeholder:"<container-path>" help:"marker file inside the container; '~' resolves to the container's $HOME"`
	ForcePost   bool          `help:"re-run the post-setup script even if the marker exists"`
	SkipPost    bool          `help:"skip the post-setup script entirely"`
	PostTimeout time.Duration `default:"10m" help:"abort the post-setup script after this long"`
	Verbose     bool          `help:"echo the post-setup exec command line"`
	Debug       bool          `help:"report containers skipped by devcontainer detection"`
}

func (c *EnterCmd) Run(cctx *Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := verifyPrerequisites(ctx); err != nil {
		return err
	}

	discoverer := devcontainer.NewDiscoverer(cctx.ops, cctx.msg)
	discoverer.Debug = c.Debug
	candidates, err := discoverer.Discover(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Discover", "error", err)
		return err
	}

	target, err := devcontainer.Resolve(candidates, c.Index)
	if err != nil {
		var ambig *devcontainer.AmbiguousSelectionError
		if errors.As(err, &ambig) {
			printCandidates(os.Stdout, ambig.Candidates)
		}
		return err
	}
	slog.InfoContext(ctx, "EnterCmd.Run resolved", "id", target.ID, "name", target.Name)

	post := devcontainer.NewPostSetup(cctx.ops, devcontainer.NewHostFileOps(), cctx.msg, os.Stdout, os.Stderr)
	pctx, cancel := context.WithTimeout(ctx, c.PostTimeout)
	result, err := post.Ensure(pctx, target.ID, devcontainer.PostSetupConfig{
		HostScriptPath: c.Postscript,
		MarkerPath:     c.Marker,
		ForceRerun:     c.ForcePost,
		Skip:           c.SkipPost,
		Verbose:        c.Verbose,
	})
	cancel()
	if err != nil {
		if errors.Is(err, devcontainer.ErrRuntimeUnavailable) || errors.Is(err, devcontainer.ErrContainerGone) {
			return err
		}
		// A failed bootstrap should not lock the user out of the container.
		slog.ErrorContext(ctx, "PostSetup.Ensure", "error", err)
		cctx.msg.Messagef(ctx, "post-setup did not complete (%v); attaching anyway", err)
	} else if result.SkippedReason != "" {
		slog.InfoContext(ctx, "PostSetup.Ensure skipped", "reason", result.SkippedReason)
	}

	// On success this exec-replaces the process and never returns.
	launcher := devcontainer.NewShellLauncher(cctx.ops)
	return launcher.Attach(ctx, target.ID)
}
