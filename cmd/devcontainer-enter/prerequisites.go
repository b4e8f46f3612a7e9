package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	devcontainer "github.com/sveint/devcontainer-enter"
	"github.com/sveint/devcontainer-enter/docker"
)

type diagnosticCheck struct {
	Name string
	Run  func(context.Context) error
}

var diagnosticChecks = []diagnosticCheck{
	{
		Name: "docker CLI on PATH",
		Run: func(ctx context.Context) error {
			if _, err := exec.LookPath("docker"); err != nil {
				return fmt.Errorf("docker binary not found on host: %w", err)
			}
			return nil
		},
	},
	{
		Name: "docker daemon reachable",
		Run: func(ctx context.Context) error {
			version, err := docker.System.Version(ctx)
			if err != nil {
				return fmt.Errorf("docker daemon did not respond: %w", err)
			}
			slog.InfoContext(ctx, "verifyPrerequisites", "dockerVersion", version)
			return nil
		},
	},
}

// verifyPrerequisites fails with ErrRuntimeUnavailable on the first check
// that does not pass; without a reachable engine nothing else can work.
func verifyPrerequisites(ctx context.Context) error {
	for _, check := range diagnosticChecks {
		if err := check.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "diagnosticCheck failed", "name", check.Name, "error", err)
			return fmt.Errorf("%w: %v", devcontainer.ErrRuntimeUnavailable, err)
		}
		slog.DebugContext(ctx, "diagnosticCheck passed", "name", check.Name)
	}
	return nil
}
