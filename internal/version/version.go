package version // import "github.com/Xunop/book-faker/internal/version"

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is overridden at build time with
// -ldflags "-X github.com/Xunop/book-faker/internal/version.Version=x.y.z".
var Version = "0.1.0"

// GetCurrentVersion returns the running version, or "dev" when the build
// version is not valid semver.
func GetCurrentVersion() string {
	if !semver.IsValid(canonical(Version)) {
		return "dev"
	}
	return strings.TrimPrefix(semver.Canonical(canonical(Version)), "v")
}

// GetMinorVersion returns the major.minor part of a version, e.g. 0.1.
func GetMinorVersion(version string) string {
	mm := semver.MajorMinor(canonical(version))
	return strings.TrimPrefix(mm, "v")
}

func canonical(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
