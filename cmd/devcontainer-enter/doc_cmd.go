package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
)

type DocCmd struct{}

func (c *DocCmd) Run(kctx *kong.Context, cctx *Context) error {
	return markdownHelp(kctx.Stdout, kctx)
}

// markdownHelp renders the whole command tree as markdown, for the README.
func markdownHelp(w io.Writer, ctx *kong.Context) error {
	if w == nil {
		w = io.Discard
	}
	root := ctx.Model.Node

	fmt.Fprintf(w, "# %s\n\n", ctx.Model.Name)
	if root.Help != "" {
		fmt.Fprintf(w, "%s\n\n", root.Help)
	}

	var globals []*kong.Flag
	for _, flag := range ctx.Model.Flags {
		if !flag.Hidden && flag.Group == nil {
			globals = append(globals, flag)
		}
	}
	if len(globals) > 0 {
		fmt.Fprintf(w, "## Global Flags\n\n")
		for _, flag := range globals {
			printFlag(w, flag)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Commands\n\n")
	for _, child := range root.Children {
		if child.Hidden || child.Type != kong.CommandNode {
			continue
		}
		cmdPath := ctx.Model.Name + " " + child.Name
		fmt.Fprintf(w, "### `%s`\n\n", cmdPath)
		if child.Help != "" {
			fmt.Fprintf(w, "%s\n\n", child.Help)
		}
		fmt.Fprintf(w, "**Usage:**\n\n```\n%s\n```\n\n", usageLine(cmdPath, child))
		if len(child.Flags) > 0 {
			fmt.Fprintf(w, "**Flags:**\n\n")
			for _, flag := range child.Flags {
				if !flag.Hidden {
					printFlag(w, flag)
				}
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func printFlag(w io.Writer, flag *kong.Flag) {
	sig := fmt.Sprintf("`--%s`", flag.Name)
	if flag.Short != 0 {
		sig = fmt.Sprintf("`-%c, --%s`", flag.Short, flag.Name)
	}
	if !flag.IsBool() {
		sig += fmt.Sprintf(" _%s_", flag.FormatPlaceHolder())
	}
	fmt.Fprintf(w, "- %s", sig)
	if flag.Help != "" {
		fmt.Fprintf(w, " - %s", flag.Help)
	}
	if flag.Default != "" {
		fmt.Fprintf(w, " (default: `%s`)", flag.Default)
	}
	fmt.Fprintln(w)
}

func usageLine(cmdPath string, node *kong.Node) string {
	usage := cmdPath
	if len(node.Flags) > 0 {
		usage += " [flags]"
	}
	for _, arg := range node.Positional {
		name := strings.ToUpper(arg.Name)
		if arg.Required {
			usage += fmt.Sprintf(" <%s>", name)
		} else {
			usage += fmt.Sprintf(" [%s]", name)
		}
	}
	return usage
}
