package version

import (
	"strings"
	"testing"
)

func TestPopulateFromBuildInfo(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "", ""
	populateFromBuildInfo(map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.modified": "true",
		"vcs.time":     "2026-03-04T05:06:07Z",
	})
	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want 0123456-dirty", Commit)
	}
	if Version != "dev-20260304" {
		t.Errorf("Version = %q, want dev-20260304", Version)
	}

	Version, Commit = "v1.0.0", "abc"
	populateFromBuildInfo(map[string]string{"vcs.revision": "ffff"})
	if Version != "v1.0.0" || Commit != "abc" {
		t.Errorf("ldflags values overwritten: %q %q", Version, Commit)
	}
}

func TestFullAndGet(t *testing.T) {
	if !strings.Contains(Full(), Commit) {
		t.Errorf("Full() = %q, missing commit", Full())
	}
	info := Get()
	if info.Version != Version || info.Platform == "" || info.GoVersion == "" {
		t.Errorf("Get() = %+v", info)
	}
}
