package common

import "fmt"

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X .../internal/common.Version=1.2.3"
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the semantic version string.
func GetVersion() string { return Version }

// GetBuild returns the build timestamp.
func GetBuild() string { return Build }

// GetGitCommit returns the git commit hash the binary was built from.
func GetGitCommit() string { return GitCommit }

// GetFullVersion returns the version with build metadata appended.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}
