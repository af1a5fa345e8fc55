// Package buildinfo reports the version of the running binary.
//
// Release builds stamp the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/tagcloud/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/tagcloud/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Unstamped builds fall back to the module version and VCS settings that the
// Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the version triple served by /healthz and printed by --version.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get returns the stamped build information, filling unstamped fields from
// the embedded module metadata when it is available.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// Template returns the cobra version template.
func Template() string {
	info := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
}
