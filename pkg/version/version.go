// Package version exposes build-time version information for binderlca.
//
// The variables are overridden at link time:
//
//	go build -ldflags "-X github.com/rshade/binderlca/pkg/version.version=v1.2.3"
package version

import "github.com/Masterminds/semver/v3"

//nolint:gochecknoglobals // Set via -ldflags at build time.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the git commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsRelease reports whether the embedded version is a valid, non-prerelease semver.
func IsRelease() bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return v.Prerelease() == ""
}
