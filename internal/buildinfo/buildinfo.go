package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/aalvaropc/crosspost/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("crosspost %s (commit=%s, date=%s)", Version, Commit, Date)
}
