// Package version carries build identification, stamped via -ldflags at
// release time.
package version

import "fmt"

var (
	// Version is the release version of the binaries.
	Version = "dev"
	// GitSHA is the git commit the binaries were built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String renders the full build identification line.
func String() string {
	return fmt.Sprintf("%s (%s, built %s)", Version, GitSHA, BuildTime)
}
