// Package build exposes build-time metadata injected via ldflags.
package build

// Version and Commit are set at build time by:
//
//	-ldflags "-X github.com/joestump/linkboard/internal/build.Version=... -X github.com/joestump/linkboard/internal/build.Commit=..."
var (
	Version = "dev"
	Commit  = "unknown"
)

// String formats the build metadata for the version command and health checks.
func String() string {
	return Version + " (" + Commit + ")"
}
