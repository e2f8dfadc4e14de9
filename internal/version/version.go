// Package version reports build metadata. Release builds set the variables
// with, for example:
//
//	go build -ldflags "-X github.com/smazurov/kbcontrol/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	BuildID   = "unknown"
)

// Info is the build metadata reported by the version command and
// /api/version.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	BuildID   string `json:"build_id"`
	GoVersion string `json:"go_version"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		BuildID:   BuildID,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the bare version, used as the OpenAPI document version.
func String() string {
	return Version
}

// String formats the build information on one line.
func (i Info) String() string {
	s := "kbcontrol " + i.Version
	if i.GitCommit != "unknown" {
		s += fmt.Sprintf(" (commit %s, built %s)", i.GitCommit, i.BuildDate)
	}
	return s + fmt.Sprintf(" %s %s", i.GoVersion, i.Platform)
}
