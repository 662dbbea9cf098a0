// Package version exposes the build metadata stamped into release binaries
// via -ldflags. A binary built straight from source keeps the defaults and
// identifies itself as a dev build.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the one-line version shown by --version.
func String() string {
	if Version == "dev" {
		return "dev (source build)"
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
