// Package version reports build metadata for the coach binary.
// Values are injected at build time, e.g.
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.0 -X .../internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("coach version %s (commit %s, built %s)", Version, Commit, BuildTime)
}
