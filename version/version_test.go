package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func saveAndRestore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() { Version, GitCommit, BuildTime = v, c, b }
}

func TestResolveFromLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abcdef0123456"
	BuildTime = "2024-01-15T10:30:00Z"

	info := resolve(&debug.BuildInfo{GoVersion: "go1.26.0", Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "ffffffffffff"},
		{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
	}})
	if info.Version != "1.2.0" || info.Commit != "abcdef0" {
		t.Errorf("ldflags must win: %+v", info)
	}
	if !info.BuiltAt.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected build time %s", info.BuiltAt)
	}
	if !info.Release() {
		t.Error("expected a release build")
	}
}

func TestResolveFromBuildInfo(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := resolve(&debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2025-06-01T12:00:00Z"},
		},
	})
	if info.Version != "v0.3.1" || info.Commit != "0123456" || !info.Dirty {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Release() {
		t.Error("dirty builds are not releases")
	}
	if got := info.Short(); got != "v0.3.1-0123456-dirty" {
		t.Errorf("unexpected short version %q", got)
	}
	if s := info.String(); !strings.Contains(s, "go1.26.0") || !strings.Contains(s, "2025-06-01T12:00:00Z") {
		t.Errorf("unexpected string %q", s)
	}
}

func TestResolveDevel(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := resolve(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if info.Version != "dev" || info.Release() {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Short() != "dev" {
		t.Errorf("expected plain dev, got %q", info.Short())
	}
	if resolve(nil).Version != "dev" {
		t.Error("nil build info should keep ldflags values")
	}
}

func TestFieldsAndBanner(t *testing.T) {
	info := Info{Version: "1.0.0", Commit: "abc1234", GoVersion: "go1.26.0"}
	f := info.Fields()
	if f["version"] != "1.0.0" || f["commit"] != "abc1234" {
		t.Errorf("unexpected fields %v", f)
	}
	if b := Banner("genrun"); !strings.HasPrefix(b, "genrun ") {
		t.Errorf("unexpected banner %q", b)
	}
}
