package policy

import "strings"

// NormalizeReleaseVersion rewrites the first prerelease separator in a
// release version to a build-metadata separator ("1.2.3-rc1" -> "1.2.3+rc1").
// Container registries forbid "+" in tags, so releases are tagged with a
// "-" suffix; but for range checks a prerelease sorts below its base
// version while build metadata sits at it, so the suffix has to be read
// back as build metadata. Only the first "-" is rewritten.
func NormalizeReleaseVersion(version string) string {
	return strings.Replace(version, "-", "+", 1)
}
