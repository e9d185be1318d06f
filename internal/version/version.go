// Package version holds the build version of the directus CLI.
package version

// Set with -ldflags "-X github.com/directus/directus-sdk-go/internal/version.Version=...".
var (
	Version   = "0.1.0"
	GitCommit = ""
)

// String returns the version with the commit, when known.
func String() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
