// dclogtail follows the devcontainer-enter JSON log file and prints it in a
// human-readable, colorized form.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nxadm/tail"
	"golang.org/x/term"
)

const reset = "\033[0m"

const (
	cyan         = 36
	darkGray     = 90
	lightRed     = 91
	lightYellow  = 93
	lightMagenta = 95
)

func colorize(colorCode int, v string) string {
	return fmt.Sprintf("\033[%dm%s%s", colorCode, v, reset)
}

func levelColor(level string) int {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return darkGray
	case "WARN":
		return lightYellow
	case "ERROR":
		return lightRed
	case "INFO":
		return cyan
	}
	return lightMagenta
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <log file path>\n", os.Args[0])
		os.Exit(1)
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))

	t, err := tail.TailFile(os.Args[1], tail.Config{
		ReOpen:        true,
		Follow:        true,
		CompleteLines: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for line := range t.Lines {
		rendered, err := renderLine(line.Text, color)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(rendered)
	}
	if err := t.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func renderLine(text string, color bool) (string, error) {
	var record map[string]any
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return "", fmt.Errorf("not a JSON log line: %q", text)
	}

	level, _ := record["level"].(string)
	msg, _ := record["msg"].(string)
	timestamp, _ := record["time"].(string)
	if ts, err := time.Parse(time.RFC3339Nano, timestamp); err == nil {
		timestamp = ts.Local().Format(time.DateTime)
	}
	delete(record, "level")
	delete(record, "msg")
	delete(record, "time")

	levelTag := level + ":"
	if color {
		levelTag = colorize(levelColor(level), levelTag)
	}

	out := strings.Builder{}
	out.WriteString(timestamp)
	out.WriteString(" ")
	out.WriteString(levelTag)
	out.WriteString(" ")
	out.WriteString(msg)
	if len(record) > 0 {
		attrs, err := json.Marshal(record)
		if err != nil {
			return "", err
		}
		rendered := " " + string(attrs)
		if color {
			rendered = " " + colorize(darkGray, string(attrs))
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}
