package mailmerge

import (
	"fmt"
	"runtime"
)

// Version information for the mailmerge library.
// These values are injected during build time via ldflags.
// The values below are fallbacks for development builds.
var (
	// Version is the semantic version of the library.
	Version = "dev"

	// GitCommit is the git commit hash when the binary was built.
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// UserAgent returns a user agent string for HTTP requests made by the
// library.
func UserAgent() string {
	return fmt.Sprintf("mailmerge/%s (%s; %s/%s)",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
