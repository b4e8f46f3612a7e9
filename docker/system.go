package docker

import (
	"context"
	"os/exec"
	"strings"
	"syscall"
)

type system struct{}

// System is a service interface to interact with the docker engine itself.
var System system

// Version returns the server version reported by the engine. It fails when
// the docker binary is missing or the daemon is unreachable, which makes it
// a cheap reachability probe.
func (s *system) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", "version", "--format", "{{.Server.Version}}")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
