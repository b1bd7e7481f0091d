package version

import "fmt"

// Tagline is the application's tagline used in help text
const Tagline = "I'm Obreiro, and I work through your backlog one commit at a time"

// Build information injected at build time via ldflags
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("obreiro %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}
