package devcontainer

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
)

// FileOps is the host filesystem seam used by the post-setup controller.
type FileOps interface {
	Stat(path string) (os.FileInfo, error)
	// Expand resolves a leading ~ against the host user's home directory.
	Expand(path string) (string, error)
}

type hostFileOps struct{}

func NewHostFileOps() FileOps {
	return &hostFileOps{}
}

func (f *hostFileOps) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (f *hostFileOps) Expand(path string) (string, error) {
	return homedir.Expand(path)
}
