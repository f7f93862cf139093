// Package version exposes build information injected at link time.
package version

import "fmt"

// Set via -ldflags "-X github.com/rshade/launchdeck/pkg/version.version=..."
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// UserAgent returns the User-Agent sent to the launches API.
func UserAgent() string {
	return fmt.Sprintf("launchdeck/%s", version)
}
