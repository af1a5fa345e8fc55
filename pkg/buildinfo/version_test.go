package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGetStamped(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v9.9.9"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
	})
	Version, Commit, Date = "v1.0.0", "deadbeef", "2026-01-02"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	got := Get()
	want := Info{Version: "v1.0.0", Commit: "deadbeef", Date: "2026-01-02"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetFallback(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		},
	})

	got := Get()
	want := Info{Version: "v0.4.1", Commit: "abc123", Date: "2026-03-04T05:06:07Z"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetDevel(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Get(); got.Version != "dev" {
		t.Errorf("Version = %q, want dev", got.Version)
	}

	stubBuildInfo(t, nil)
	if got := Get(); got != (Info{Version: "dev", Commit: "none", Date: "unknown"}) {
		t.Errorf("Get() = %+v", got)
	}
}

func TestTemplate(t *testing.T) {
	stubBuildInfo(t, nil)
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} dev (commit none") {
		t.Errorf("Template() = %q", got)
	}
}
