package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X github.com/moonsphere-systems/moonsphere-cli/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, set the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("msph %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

// Generator names this program in generated file banners.
func Generator() string {
	return "msph " + Version
}
