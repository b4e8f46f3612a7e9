package version

import (
	"runtime/debug"
)

var (
	// These will be set via -ldflags during build
	GitCommit string
	BuildTime string
)

// Info holds the version information for a build of this tool.
type Info struct {
	GitCommit string           `json:"gitCommit,omitempty"`
	BuildTime string           `json:"buildTime,omitempty"`
	BuildInfo *debug.BuildInfo `json:"buildInfo,omitempty"`
}

// Get returns the version information
func Get() Info {
	buildInfo, ok := debug.ReadBuildInfo()
	ret := Info{
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	if ok {
		ret.BuildInfo = buildInfo
	}
	return ret
}
