package version

import "testing"

func TestGet(t *testing.T) {
	GitCommit = "abc123"
	BuildTime = "2026-01-02T03:04:05Z"
	defer func() {
		GitCommit = ""
		BuildTime = ""
	}()

	got := Get()
	if got.GitCommit != "abc123" {
		t.Errorf("GitCommit: expected abc123, got %q", got.GitCommit)
	}
	if got.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("BuildTime: expected 2026-01-02T03:04:05Z, got %q", got.BuildTime)
	}
}
