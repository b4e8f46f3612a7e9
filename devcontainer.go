// Package devcontainer finds running devcontainers on the local host,
// resolves a user selection to exactly one of them, runs an optional one-time
// post-setup script inside it, and hands the process over to an interactive
// shell in the container.
package devcontainer

// ContainerRecord is a point-in-time snapshot of one running container,
// assembled from the engine's list and inspect output. Records are built
// fresh on every invocation and never persisted.
type ContainerRecord struct {
	// ID is the engine's opaque container identifier.
	ID string
	// Name is the container name without the leading slash.
	Name string
	// Image is the image reference the container was created from.
	Image string
	// Labels are the container's config labels.
	Labels map[string]string
	// Env is the container's configured environment, as KEY=VALUE strings.
	Env []string
	// State is the engine-reported state string, e.g. "running".
	State string
}

// Classification is the result of the devcontainer heuristic. It is an enum
// rather than a bool so the heuristic can be tightened later without breaking
// callers: Ambiguous entries are currently surfaced as candidates, but a
// stricter caller could choose to drop them.
type Classification int

const (
	// NotDevcontainer means no devcontainer signal matched.
	NotDevcontainer Classification = iota
	// Ambiguous means only a weak signal matched (a label value or a name
	// segment mentioning devcontainers).
	Ambiguous
	// Devcontainer means an authoritative signal matched: a well-known label
	// key, the DEVCONTAINER=true env marker, or a vsc- name prefix.
	Devcontainer
)

func (c Classification) String() string {
	switch c {
	case Devcontainer:
		return "devcontainer"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not-devcontainer"
	}
}

// Candidate is a ContainerRecord that classified as a potential devcontainer.
// Candidates live for one invocation: produced by discovery, consumed by the
// selector, then discarded.
type Candidate struct {
	ContainerRecord
	Class Classification
}
