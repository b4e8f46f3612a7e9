package devcontainer

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeUnavailable means the container engine could not be reached at
	// all (binary missing, or daemon not responding). Fatal, never retried.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")

	// ErrContainerGone means a container ID that discovery returned became
	// invalid before we could use it (removed concurrently). The fix is to
	// re-run and pick again.
	ErrContainerGone = errors.New("container no longer exists")

	// ErrShellUnavailable means neither of the preferred shells is executable
	// inside the target container.
	ErrShellUnavailable = errors.New("no usable shell found in container")
)

// NoCandidatesError reports an empty candidate list.
type NoCandidatesError struct{}

func (e *NoCandidatesError) Error() string {
	return "no running devcontainers found"
}

// AmbiguousSelectionError reports that more than one candidate exists and no
// index was requested. It carries the candidates so the caller can display
// the numbered list.
type AmbiguousSelectionError struct {
	Candidates []Candidate
}

func (e *AmbiguousSelectionError) Error() string {
	return fmt.Sprintf("%d running devcontainers found; pass an index to pick one", len(e.Candidates))
}

// IndexOutOfRangeError reports a requested index outside [1, Count].
type IndexOutOfRangeError struct {
	Requested int
	Count     int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("selection %d out of range [1, %d]", e.Requested, e.Count)
}
