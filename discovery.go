package devcontainer

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sveint/devcontainer-enter/docker/types"
)

// Label keys set by devcontainer tooling are the authoritative signal. Name
// patterns and the DEVCONTAINER env marker cover containers started without
// labels (older VS Code releases, hand-rolled compose setups).
var devLabelKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^devcontainer\.`),
	regexp.MustCompile(`(?i)(?:^|[._-])devcontainer(?:[._-]|$)`),
	regexp.MustCompile(`(?i)(?:^|[._-])vsch(?:[._-]|$)`),
}

var devNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^vsc-`),
}

// devNameSegment matches compose-style project names like proj_devcontainer-app-1.
var devNameSegment = regexp.MustCompile(`(?i)(?:^|[._-])devcontainer(?:[._-]|$)`)

const devEnvMarker = "DEVCONTAINER=true"

// Classify applies the devcontainer heuristic to a single record. It is a
// pure function: strong signals (label keys, env marker, vsc- name prefix)
// give Devcontainer; weak signals (label values or name segments that merely
// mention devcontainers) give Ambiguous.
func Classify(rec ContainerRecord) Classification {
	for key := range rec.Labels {
		for _, p := range devLabelKeyPatterns {
			if p.MatchString(key) {
				return Devcontainer
			}
		}
	}
	for _, e := range rec.Env {
		if strings.EqualFold(strings.TrimSpace(e), devEnvMarker) {
			return Devcontainer
		}
	}
	for _, p := range devNamePatterns {
		if p.MatchString(rec.Name) {
			return Devcontainer
		}
	}
	for _, v := range rec.Labels {
		if strings.Contains(strings.ToLower(v), "devcontainer") {
			return Ambiguous
		}
	}
	if devNameSegment.MatchString(rec.Name) {
		return Ambiguous
	}
	return NotDevcontainer
}

// Discoverer queries the runtime and filters devcontainer-like entries out of
// all running containers.
type Discoverer struct {
	ops RuntimeOps
	msg UserMessenger
	// Debug reports skipped containers through the messenger.
	Debug bool
}

func NewDiscoverer(ops RuntimeOps, msg UserMessenger) *Discoverer {
	return &Discoverer{ops: ops, msg: msg}
}

// Discover returns the devcontainer candidates among the running containers,
// preserving the runtime's native listing order so index numbering stays
// stable across invocations run close together.
func (d *Discoverer) Discover(ctx context.Context) ([]Candidate, error) {
	entries, err := d.ops.ListRunning(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, entry := range entries {
		rec, err := d.record(ctx, entry)
		if err != nil {
			// A container removed between list and inspect cannot be a
			// target anyway; skip it instead of failing the whole run.
			if errors.Is(err, ErrContainerGone) {
				slog.InfoContext(ctx, "Discoverer.Discover: container vanished during inspect", "id", entry.ID)
				continue
			}
			return nil, err
		}
		class := Classify(rec)
		if class == NotDevcontainer {
			if d.Debug {
				d.msg.Messagef(ctx, "[debug] skipped %s (%s): %s", rec.Name, shortID(rec.ID), class)
			}
			continue
		}
		candidates = append(candidates, Candidate{ContainerRecord: rec, Class: class})
	}

	slog.InfoContext(ctx, "Discoverer.Discover", "running", len(entries), "candidates", len(candidates))
	return candidates, nil
}

func (d *Discoverer) record(ctx context.Context, entry types.PSEntry) (ContainerRecord, error) {
	details, err := d.ops.Inspect(ctx, entry.ID)
	if err != nil {
		return ContainerRecord{}, err
	}
	rec := ContainerRecord{
		ID:    entry.ID,
		Name:  entry.Names,
		Image: entry.Image,
		State: entry.State,
	}
	if len(details) > 0 {
		rec.Labels = details[0].Config.Labels
		rec.Env = details[0].Config.Env
		if rec.Name == "" {
			rec.Name = strings.TrimPrefix(details[0].Name, "/")
		}
		if rec.State == "" {
			rec.State = details[0].State.Status
		}
	}
	return rec, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
