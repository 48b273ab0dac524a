package config

// Build metadata, set with -ldflags "-X github.com/trebuchet-org/solbuild/internal/config.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
