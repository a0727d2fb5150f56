package version

// Version is set at build time with -ldflags "-X interestsearch/internal/version.Version=..."
var Version = "dev"

// UserAgent returns the User-Agent sent to the search provider
func UserAgent() string {
	return "interestsearch/" + Version
}
