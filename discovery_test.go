package devcontainer

import (
	"context"
	"fmt"
	"testing"

	"github.com/sveint/devcontainer-enter/docker/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  ContainerRecord
		want Classification
	}{
		{
			name: "devcontainer label key",
			rec: ContainerRecord{
				Name:   "proj_devcontainer-app-1",
				Labels: map[string]string{"devcontainer.local_folder": "/home/u/proj"},
			},
			want: Devcontainer,
		},
		{
			name: "vsch label key",
			rec: ContainerRecord{
				Name:   "something",
				Labels: map[string]string{"vsch.quality": "stable"},
			},
			want: Devcontainer,
		},
		{
			name: "embedded devcontainer label key segment",
			rec: ContainerRecord{
				Labels: map[string]string{"com.example.devcontainer.id": "x"},
			},
			want: Devcontainer,
		},
		{
			name: "env marker",
			rec: ContainerRecord{
				Name: "plain",
				Env:  []string{"PATH=/usr/bin", "DEVCONTAINER=true"},
			},
			want: Devcontainer,
		},
		{
			name: "env marker case-insensitive",
			rec: ContainerRecord{
				Env: []string{"devcontainer=TRUE"},
			},
			want: Devcontainer,
		},
		{
			name: "vsc name prefix",
			rec: ContainerRecord{
				Name: "vsc-myproj-abc123",
			},
			want: Devcontainer,
		},
		{
			name: "label value mentions devcontainer",
			rec: ContainerRecord{
				Name:   "worker",
				Labels: map[string]string{"origin": "devcontainer-cli"},
			},
			want: Ambiguous,
		},
		{
			name: "compose-style name segment only",
			rec: ContainerRecord{
				Name: "proj_devcontainer-app-1",
			},
			want: Ambiguous,
		},
		{
			name: "unrelated container",
			rec: ContainerRecord{
				Name:   "postgres-1",
				Labels: map[string]string{"com.docker.compose.service": "db"},
				Env:    []string{"POSTGRES_PASSWORD=x"},
			},
			want: NotDevcontainer,
		},
		{
			name: "devcontainer substring in unsegmented name does not match",
			rec: ContainerRecord{
				Name: "mydevcontainers",
			},
			want: NotDevcontainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rec); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.rec.Name, got, tt.want)
			}
		})
	}
}

func TestDiscoverFiltersAndPreservesOrder(t *testing.T) {
	entries := []types.PSEntry{
		{ID: "aaa", Names: "redis-1", Image: "redis:7", State: "running"},
		{ID: "bbb", Names: "proj_devcontainer-app-1", Image: "mcr.microsoft.com/devcontainers/go", State: "running"},
		{ID: "ccc", Names: "nginx-1", Image: "nginx", State: "running"},
		{ID: "ddd", Names: "vsc-other-456", Image: "ubuntu", State: "running"},
	}
	details := map[string]types.ContainerDetail{
		"aaa": {ID: "aaa", Config: types.Config{Labels: map[string]string{"app": "redis"}}},
		"bbb": {ID: "bbb", Config: types.Config{Labels: map[string]string{"devcontainer.local_folder": "/home/u/proj"}}},
		"ccc": {ID: "ccc"},
		"ddd": {ID: "ddd"},
	}

	ops := &mockRuntimeOps{
		listFunc: func(ctx context.Context) ([]types.PSEntry, error) {
			return entries, nil
		},
		inspectFunc: func(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
			return []types.ContainerDetail{details[id[0]]}, nil
		},
	}

	d := NewDiscoverer(ops, NewNullMessenger())
	candidates, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].ID != "bbb" || candidates[1].ID != "ddd" {
		t.Errorf("candidates out of listing order: %q, %q", candidates[0].ID, candidates[1].ID)
	}
	if candidates[0].Class != Devcontainer {
		t.Errorf("labeled container classified %v, want Devcontainer", candidates[0].Class)
	}
}

func TestDiscoverSingleLabeledAmongUnrelated(t *testing.T) {
	ops := &mockRuntimeOps{
		listFunc: func(ctx context.Context) ([]types.PSEntry, error) {
			return []types.PSEntry{
				{ID: "1", Names: "db-1", State: "running"},
				{ID: "2", Names: "proj_devcontainer-app-1", State: "running"},
				{ID: "3", Names: "cache-1", State: "running"},
			}, nil
		},
		inspectFunc: func(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
			if id[0] == "2" {
				return []types.ContainerDetail{{
					ID:     "2",
					Config: types.Config{Labels: map[string]string{"devcontainer.local_folder": "/home/u/proj"}},
				}}, nil
			}
			return []types.ContainerDetail{{ID: id[0]}}, nil
		},
	}

	d := NewDiscoverer(ops, NewNullMessenger())
	candidates, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d", len(candidates))
	}
	target, err := Resolve(candidates, nil)
	if err != nil {
		t.Fatalf("Resolve on single candidate: %v", err)
	}
	if target.ID != "2" {
		t.Errorf("resolved %q, want 2", target.ID)
	}
}

func TestDiscoverZeroCandidatesIsNotAnError(t *testing.T) {
	ops := &mockRuntimeOps{
		listFunc: func(ctx context.Context) ([]types.PSEntry, error) {
			return []types.PSEntry{{ID: "1", Names: "db-1", State: "running"}}, nil
		},
		inspectFunc: func(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
			return []types.ContainerDetail{{ID: id[0]}}, nil
		},
	}
	d := NewDiscoverer(ops, NewNullMessenger())
	candidates, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}

func TestDiscoverSkipsVanishedContainer(t *testing.T) {
	ops := &mockRuntimeOps{
		listFunc: func(ctx context.Context) ([]types.PSEntry, error) {
			return []types.PSEntry{
				{ID: "gone", Names: "vsc-old-1", State: "running"},
				{ID: "here", Names: "vsc-new-2", State: "running"},
			}, nil
		},
		inspectFunc: func(ctx context.Context, id ...string) ([]types.ContainerDetail, error) {
			if id[0] == "gone" {
				return nil, fmt.Errorf("%w: No such container: gone", ErrContainerGone)
			}
			return []types.ContainerDetail{{ID: id[0]}}, nil
		},
	}
	d := NewDiscoverer(ops, NewNullMessenger())
	candidates, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "here" {
		t.Fatalf("expected only the surviving container, got %+v", candidates)
	}
}
