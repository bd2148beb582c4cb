package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/varsub/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/varsub/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/varsub/internal/version.Date={{.Date}}
)

// Info returns the one-line build description
func Info() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
