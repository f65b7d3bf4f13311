package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func Test_shortVersion(t *testing.T) {
	got := shortVersion(Info{Version: "1.2.0", BuildDate: "2025-09-01T10:00:00Z"})
	if got != "readmegen version 1.2.0 (2025-09-01)\nhttps://github.com/yeisme/readmegen/releases/tag/v1.2.0" {
		t.Fatalf("release: %q", got)
	}
	if got := shortVersion(Info{Version: "dev", BuildDate: "unknown"}); got != "readmegen version dev (unknown)" {
		t.Fatalf("dev: %q", got)
	}
	if got := shortVersion(Info{Version: "1.3.0-rc.1", BuildDate: "unknown"}); strings.Contains(got, "releases") {
		t.Fatalf("prerelease should not link: %q", got)
	}
}

func Test_fillFromBuildInfo(t *testing.T) {
	info := Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown", Modified: "false"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-09-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	if info.Version != "0.4.1" || info.GitCommit != "abc123" || info.BuildDate != "2025-09-01T10:00:00Z" || info.Modified != "true" {
		t.Fatalf("info: %+v", info)
	}

	info = Info{Version: "dev"}
	fillFromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if info.Version != "dev" {
		t.Fatalf("devel build changed version: %q", info.Version)
	}
}
