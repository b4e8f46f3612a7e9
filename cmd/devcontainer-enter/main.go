package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	kongcompletion "github.com/jotaen/kong-completion"
	"gopkg.in/natefinch/lumberjack.v2"

	devcontainer "github.com/sveint/devcontainer-enter"
)

// Context carries shared dependencies into the kong command Run methods.
type Context struct {
	LogFile  string
	LogLevel string
	ops      devcontainer.RuntimeOps
	msg      devcontainer.UserMessenger
}

type CLI struct {
	LogFile  string `default:"/tmp/devcontainer-enter/log" placeholder:"<log-file-path>" help:"location of the JSON log file"`
	LogLevel string `default:"info" placeholder:"<debug|info|warn|error>" help:"the logging level (debug, info, warn, error)"`

	Enter      EnterCmd                  `cmd:"" default:"withargs" help:"enter a running devcontainer (runs the post-setup script on first entry)"`
	Ls         LsCmd                     `cmd:"" help:"list running devcontainers"`
	Doc        DocCmd                    `cmd:"" help:"print complete command help formatted as markdown"`
	Version    VersionCmd                `cmd:"" help:"print version information about this command"`
	Completion kongcompletion.Completion `cmd:"" help:"print shell completion code"`
}

func (c *CLI) initSlog() {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // Default to info if invalid
	}

	logger := slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	slog.Info("slog initialized")
}

const description = `Discover running devcontainers, pick one, and shell into it.

On first entry into a container, an optional host-side post-setup script
(default ~/dc-postcommand.sh) is copied in and executed once; a marker file
inside the container records completion.`

func main() {
	var cli CLI

	parser := kong.Must(&cli,
		kong.Name("devcontainer-enter"),
		kong.Description(description),
		kong.Configuration(kongyaml.Loader, "~/.config/devcontainer-enter/config.yaml"),
	)
	kongcompletion.Register(parser)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	cli.initSlog()

	err = kctx.Run(&Context{
		LogFile:  cli.LogFile,
		LogLevel: cli.LogLevel,
		ops:      devcontainer.NewDockerRuntimeOps(),
		msg:      devcontainer.NewTerminalMessenger(os.Stderr),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, userText(err))
		os.Exit(exitCode(err))
	}
}

// Exit codes, one per failure class, so scripts wrapping this tool can tell
// them apart.
const (
	exitNoCandidates       = 1
	exitAmbiguousSelection = 2
	exitIndexOutOfRange    = 3
	exitRuntimeUnavailable = 4
	exitShellUnavailable   = 5
	exitContainerGone      = 6
)

func exitCode(err error) int {
	var noCand *devcontainer.NoCandidatesError
	var ambig *devcontainer.AmbiguousSelectionError
	var outOfRange *devcontainer.IndexOutOfRangeError
	switch {
	case errors.As(err, &noCand):
		return exitNoCandidates
	case errors.As(err, &ambig):
		return exitAmbiguousSelection
	case errors.As(err, &outOfRange):
		return exitIndexOutOfRange
	case errors.Is(err, devcontainer.ErrRuntimeUnavailable):
		return exitRuntimeUnavailable
	case errors.Is(err, devcontainer.ErrShellUnavailable):
		return exitShellUnavailable
	case errors.Is(err, devcontainer.ErrContainerGone):
		return exitContainerGone
	}
	return 1
}

// userText renders an error with actionable guidance where there is some.
func userText(err error) string {
	switch {
	case errors.Is(err, devcontainer.ErrRuntimeUnavailable):
		return fmt.Sprintf("%v\nIs docker installed and the daemon running?", err)
	case errors.Is(err, devcontainer.ErrContainerGone):
		return fmt.Sprintf("%v\nThe container went away since it was listed; re-run and pick again.", err)
	}
	return err.Error()
}
