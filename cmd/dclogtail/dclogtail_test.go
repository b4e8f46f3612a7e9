package main

import (
	"strings"
	"testing"
)

func TestRenderLine(t *testing.T) {
	line := `{"time":"2026-01-02T15:04:05Z","level":"INFO","msg":"discovered candidates","count":2}`
	got, err := renderLine(line, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "INFO: discovered candidates") {
		t.Errorf("missing level and message: %q", got)
	}
	if !strings.Contains(got, `{"count":2}`) {
		t.Errorf("missing leftover attrs: %q", got)
	}
}

func TestRenderLineNotJSON(t *testing.T) {
	if _, err := renderLine("plain text", false); err == nil {
		t.Error("expected error for non-JSON input")
	}
}

func TestLevelColor(t *testing.T) {
	tests := map[string]int{
		"debug": darkGray,
		"INFO":  cyan,
		"warn":  lightYellow,
		"ERROR": lightRed,
		"trace": lightMagenta,
	}
	for level, want := range tests {
		if got := levelColor(level); got != want {
			t.Errorf("levelColor(%q) = %d, want %d", level, got, want)
		}
	}
}
