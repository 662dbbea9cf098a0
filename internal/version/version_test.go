package version

import "testing"

func TestStringSourceBuild(t *testing.T) {
	if got := String(); got != "dev (source build)" {
		t.Errorf("String() = %q, want dev marker", got)
	}
}

func TestStringReleaseBuild(t *testing.T) {
	Version, Commit, Date = "v1.2.0", "abc1234", "2026-08-01"
	defer func() { Version, Commit, Date = "dev", "none", "unknown" }()

	want := "v1.2.0 (commit abc1234, built 2026-08-01)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
