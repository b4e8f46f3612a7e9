package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	devcontainer "github.com/sveint/devcontainer-enter"
)

type LsCmd struct {
	Debug bool `help:"report containers skipped by devcontainer detection"`
}

func (c *LsCmd) Run(cctx *Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	if len(candidates) == 0 {
		fmt.Println("No running devcontainers found.")
		return nil
	}

	printCandidates(os.Stdout, candidates)
	return nil
}

// printCandidates renders the numbered list users pick an index from.
// Numbering is 1-based and follows the runtime's listing order.
func printCandidates(out io.Writer, candidates []devcontainer.Candidate) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tIMAGE\tCONTAINER ID\tSTATE\t")
	for i, c := range candidates {
		fmt.Fprintf(w, "[%d]\t%s\t%s\t%s\t%s\t\n", i+1, c.Name, c.Image, shortID(c.ID), c.State)
	}
	w.Flush()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
