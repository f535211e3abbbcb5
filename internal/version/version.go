// Package version carries build identification, overridden at link time
// via -ldflags -X.
package version

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is when the binary was built.
	BuildTime = "unknown"
)

// String formats the build identification for display.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
