// Package version holds build metadata injected with -ldflags -X.
package version

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns the version, with the short commit hash when it is known.
func Summary() string {
	if CommitHash == "" || CommitHash == "unknown" {
		return Version
	}
	hash := CommitHash
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return Version + " (" + hash + ")"
}
