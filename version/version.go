package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current schema/application version.
var Version = "0.2.1"

func GetCurrentVersion() string {
	return Version
}

// GetMinorVersion returns the minor version, e.g. "0.2" for "0.2.1".
func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return strings.Join(parts[:2], ".")
}

// IsVersionGreaterThan reports whether version is greater than target.
func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) > 0
}

// IsVersionGreaterOrEqualThan reports whether version is greater than or equal to target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) >= 0
}
